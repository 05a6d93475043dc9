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
	"time"

	"github.com/beevik/etree"
)

// Entry is a single item of a Feed. An entry is valid when it has content
// or at least one alternate link.
type Entry struct {
	id           string
	title        *Text
	updated      time.Time
	published    time.Time
	authors      []*Person
	content      *Text
	links        []*Link
	summary      *Text
	categories   []*Category
	contributors []*Person
	rights       *Text
}

func NewEntry(id string, title *Text, updated time.Time) (*Entry, error) {
	switch {
	case id == "":
		return nil, &FieldError{Type: "entry", Field: "id"}
	case title == nil:
		return nil, &FieldError{Type: "entry", Field: "title"}
	case updated.IsZero():
		return nil, &FieldError{Type: "entry", Field: "updated"}
	}
	return &Entry{id: id, title: title, updated: updated}, nil
}

func (e *Entry) ID() string { return e.id }
func (e *Entry) Title() *Text { return e.title }
func (e *Entry) Updated() time.Time { return e.updated }
func (e *Entry) Published() time.Time { return e.published }
func (e *Entry) Authors() []*Person { return e.authors }
func (e *Entry) Content() *Text { return e.content }
func (e *Entry) Links() []*Link { return e.links }
func (e *Entry) Summary() *Text { return e.summary }
func (e *Entry) Categories() []*Category { return e.categories }
func (e *Entry) Contributors() []*Person { return e.contributors }
func (e *Entry) Rights() *Text { return e.rights }

func (e *Entry) SetPublished(published time.Time) *Entry {
	e.published = published
	return e
}

func (e *Entry) AddAuthor(author *Person) *Entry {
	if author != nil {
		e.authors = append(e.authors, author)
	}
	return e
}

// AddContributor records a copy of contributor with its role set to
// RoleContributor.
func (e *Entry) AddContributor(contributor *Person) *Entry {
	if contributor != nil {
		e.contributors = append(e.contributors, contributor.withRole(RoleContributor))
	}
	return e
}

func (e *Entry) AddLink(link *Link) *Entry {
	if link != nil {
		e.links = append(e.links, link)
	}
	return e
}

func (e *Entry) AddCategory(category *Category) *Entry {
	if category != nil {
		e.categories = append(e.categories, category)
	}
	return e
}

func (e *Entry) SetContent(content *Text) *Entry {
	e.content = content
	return e
}

func (e *Entry) SetSummary(summary *Text) *Entry {
	e.summary = summary
	return e
}

func (e *Entry) SetRights(rights *Text) *Entry {
	e.rights = rights
	return e
}

func (e *Entry) Valid() bool {
	if e.content != nil {
		return true
	}
	for _, link := range e.links {
		if link.rel == RelAlternate {
			return true
		}
	}
	return false
}

// Render returns the entry element. When the entry has neither content nor
// an alternate link, a ValidityWarning is returned as well; the element is
// complete either way.
func (e *Entry) Render() (*etree.Element, *ValidityWarning) {
	doc := etree.NewDocument()
	el := doc.CreateElement("entry")

	el.CreateElement("id").SetText(e.id)
	adopt(el, e.title.Render())
	el.CreateElement("updated").SetText(FormatTime(e.updated))
	if !e.published.IsZero() {
		el.CreateElement("published").SetText(FormatTime(e.published))
	}

	for _, author := range e.authors {
		adopt(el, author.Render())
	}

	valid := false
	if e.content != nil {
		valid = true
		adopt(el, e.content.Render())
	}
	for _, link := range e.links {
		if link.rel == RelAlternate {
			valid = true
		}
		adopt(el, link.Render())
	}

	if e.summary != nil {
		adopt(el, e.summary.Render())
	}
	for _, category := range e.categories {
		adopt(el, category.Render())
	}
	for _, contributor := range e.contributors {
		adopt(el, contributor.Render())
	}
	if e.rights != nil {
		adopt(el, e.rights.Render())
	}

	if !valid {
		return el, &ValidityWarning{EntryID: e.id}
	}
	return el, nil
}
