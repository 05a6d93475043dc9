// Copyright (C) 2025 Opsmate, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included
// in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name(s) of the above copyright
// holders shall not be used in advertising or otherwise to promote the
// sale, use or other dealings in this Software without prior written
// authorization.

package atom

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Feed is an Atom feed document. Path names the destination the feed is
// published to and doubles as the href of the feed's self link.
type Feed struct {
	id           string
	path         string
	title        *Text
	subtitle     *Text
	rights       *Text
	updated      time.Time
	author       *Person
	contributors []*Person
	categories   []*Category
	charset      string
	logo         string
	icon         string
	generator    string
	generatorURI string
	entries      []*Entry
}

func NewFeed(id, path string, title *Text, updated time.Time, author *Person) (*Feed, error) {
	switch {
	case id == "":
		return nil, &FieldError{Type: "feed", Field: "id"}
	case path == "":
		return nil, &FieldError{Type: "feed", Field: "path"}
	case title == nil:
		return nil, &FieldError{Type: "feed", Field: "title"}
	case updated.IsZero():
		return nil, &FieldError{Type: "feed", Field: "updated"}
	case author == nil || author.name == "":
		return nil, &FieldError{Type: "feed", Field: "author"}
	}
	return &Feed{
		id:      id,
		path:    path,
		title:   title,
		updated: updated,
		author:  author,
		charset: DefaultCharset,
	}, nil
}

func (f *Feed) ID() string { return f.id }
func (f *Feed) Path() string { return f.path }
func (f *Feed) Title() *Text { return f.title }
func (f *Feed) Subtitle() *Text { return f.subtitle }
func (f *Feed) Rights() *Text { return f.rights }
func (f *Feed) Updated() time.Time { return f.updated }
func (f *Feed) Author() *Person { return f.author }
func (f *Feed) Charset() string { return f.charset }
func (f *Feed) Logo() string { return f.logo }
func (f *Feed) Icon() string { return f.icon }
func (f *Feed) Entries() []*Entry { return f.entries }

func (f *Feed) SetSubtitle(subtitle *Text) *Feed {
	f.subtitle = subtitle
	return f
}

func (f *Feed) SetRights(rights *Text) *Feed {
	f.rights = rights
	return f
}

func (f *Feed) SetCharset(charset string) *Feed {
	f.charset = charset
	return f
}

func (f *Feed) SetLogo(logo string) *Feed {
	f.logo = logo
	return f
}

func (f *Feed) SetIcon(icon string) *Feed {
	f.icon = icon
	return f
}

func (f *Feed) SetGenerator(name, uri string) *Feed {
	f.generator = name
	f.generatorURI = uri
	return f
}

func (f *Feed) AddCategory(category *Category) *Feed {
	if category != nil {
		f.categories = append(f.categories, category)
	}
	return f
}

func (f *Feed) AddContributor(contributor *Person) *Feed {
	if contributor != nil {
		f.contributors = append(f.contributors, contributor.withRole(RoleContributor))
	}
	return f
}

// AddEntry appends entry to the feed. Entries keep insertion order and
// are not deduplicated.
func (f *Feed) AddEntry(entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	f.entries = append(f.entries, entry)
	return nil
}

// Render builds the complete document. Warnings for invalid entries are
// logged and returned; they do not prevent rendering.
func (f *Feed) Render() (*etree.Document, []*ValidityWarning) {
	charset := f.charset
	if charset == "" {
		charset = DefaultCharset
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", fmt.Sprintf(`version="1.0" encoding="%s"`, charset))
	root := doc.CreateElement("feed")
	root.CreateAttr("xmlns", Namespace)

	root.CreateElement("id").SetText(f.id)
	adopt(root, f.title.Render())
	if f.subtitle != nil {
		adopt(root, f.subtitle.Render())
	}
	root.CreateElement("updated").SetText(FormatTime(f.updated))
	adopt(root, f.author.Render())

	self := NewLink(f.path).SetRel(RelSelf)
	adopt(root, self.Render())

	root.CreateElement("logo").SetText(f.logo)
	if f.icon != "" {
		root.CreateElement("icon").SetText(f.icon)
	}
	if f.rights != nil {
		adopt(root, f.rights.Render())
	}
	if f.generator != "" {
		generator := root.CreateElement("generator")
		if f.generatorURI != "" {
			generator.CreateAttr("uri", f.generatorURI)
		}
		generator.SetText(f.generator)
	}
	for _, category := range f.categories {
		adopt(root, category.Render())
	}
	for _, contributor := range f.contributors {
		adopt(root, contributor.Render())
	}

	var warnings []*ValidityWarning
	for _, entry := range f.entries {
		el, warning := entry.Render()
		if warning != nil {
			log.Printf("warning: feed %s: %s", f.id, warning)
			warnings = append(warnings, warning)
		}
		adopt(root, el)
	}
	return doc, warnings
}

// Bytes renders the feed and serializes it with two-space indentation,
// encoded in the feed's charset. Characters the charset cannot represent
// are written as numeric character references.
func (f *Feed) Bytes() ([]byte, []*ValidityWarning, error) {
	doc, warnings := f.Render()
	doc.WriteSettings.CanonicalText = true
	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, warnings, fmt.Errorf("error serializing feed %s: %w", f.id, err)
	}
	if f.charset == "" || strings.EqualFold(f.charset, DefaultCharset) {
		return data, warnings, nil
	}
	enc, err := htmlindex.Get(f.charset)
	if err != nil {
		return nil, warnings, fmt.Errorf("error encoding feed %s: unsupported charset %q: %w", f.id, f.charset, err)
	}
	encoded, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, warnings, fmt.Errorf("error encoding feed %s as %s: %w", f.id, f.charset, err)
	}
	return encoded, warnings, nil
}

// Publish serializes the feed and hands it to sink, addressed by the
// feed's path.
func (f *Feed) Publish(ctx context.Context, sink Sink) ([]*ValidityWarning, error) {
	data, warnings, err := f.Bytes()
	if err != nil {
		return warnings, err
	}
	if err := sink.WriteAll(ctx, f.path, data); err != nil {
		return warnings, fmt.Errorf("error writing feed to %s: %w", f.path, err)
	}
	return warnings, nil
}
