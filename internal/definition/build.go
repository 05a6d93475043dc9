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

package definition

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"software.sslmate.com/src/atomgen/atom"
	"software.sslmate.com/src/atomgen/internal/records"
)

const (
	modeMarkdown     = "markdown"
	defaultGenerator = "atomgen"
)

var (
	markdownOnce     sync.Once
	markdownRenderer goldmark.Markdown
)

func getMarkdownRenderer() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownRenderer
}

// now is replaced in tests.
var now = time.Now

// Build converts a feed definition into a feed. Entries from Records
// follow the inline entries. When Updated is unset the feed takes the
// latest entry update time, or the current time if there are no entries.
func Build(ctx context.Context, def *Feed) (*atom.Feed, error) {
	var entries []*atom.Entry
	for i := range def.Entries {
		entry, err := buildEntry(&def.Entries[i])
		if err != nil {
			return nil, fmt.Errorf("feed %s: entry %d: %w", def.ID, i, err)
		}
		entries = append(entries, entry)
	}
	if def.Records != nil {
		loaded, err := loadRecords(ctx, def.Records)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", def.ID, err)
		}
		entries = append(entries, loaded...)
	}

	updated := def.Updated
	if updated.IsZero() {
		for _, entry := range entries {
			if entry.Updated().After(updated) {
				updated = entry.Updated()
			}
		}
	}
	if updated.IsZero() {
		updated = now().UTC()
	}

	title, err := buildText("title", &def.Title)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", def.ID, err)
	}
	feed, err := atom.NewFeed(def.ID, def.Path, title, updated, buildPerson(&def.Author))
	if err != nil {
		return nil, err
	}
	if def.Subtitle != nil {
		subtitle, err := buildText("subtitle", def.Subtitle)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", def.ID, err)
		}
		feed.SetSubtitle(subtitle)
	}
	if def.Rights != nil {
		rights, err := buildText("rights", def.Rights)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", def.ID, err)
		}
		feed.SetRights(rights)
	}
	if def.Charset != "" {
		feed.SetCharset(def.Charset)
	}
	generator := def.Generator
	if generator == "" {
		generator = defaultGenerator
	}
	feed.SetLogo(def.Logo).SetIcon(def.Icon).SetGenerator(generator, "")
	for i := range def.Categories {
		feed.AddCategory(buildCategory(&def.Categories[i]))
	}
	for i := range def.Contributors {
		feed.AddContributor(buildPerson(&def.Contributors[i]))
	}
	for _, entry := range entries {
		if err := feed.AddEntry(entry); err != nil {
			return nil, err
		}
	}
	return feed, nil
}

func loadRecords(ctx context.Context, def *Records) ([]*atom.Entry, error) {
	db, err := records.Open(def.Driver, def.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return records.Load(ctx, db, def.Query)
}

func buildEntry(def *Entry) (*atom.Entry, error) {
	title, err := buildText("title", &def.Title)
	if err != nil {
		return nil, err
	}
	entry, err := atom.NewEntry(def.ID, title, def.Updated)
	if err != nil {
		return nil, err
	}
	entry.SetPublished(def.Published)
	for i := range def.Authors {
		entry.AddAuthor(buildPerson(&def.Authors[i]))
	}
	for i := range def.Contributors {
		entry.AddContributor(buildPerson(&def.Contributors[i]))
	}
	for i := range def.Links {
		entry.AddLink(buildLink(&def.Links[i]))
	}
	for i := range def.Categories {
		entry.AddCategory(buildCategory(&def.Categories[i]))
	}

	optional := []struct {
		tag string
		def *Text
		set func(*atom.Text) *atom.Entry
	}{
		{"content", def.Content, entry.SetContent},
		{"summary", def.Summary, entry.SetSummary},
		{"rights", def.Rights, entry.SetRights},
	}
	for _, o := range optional {
		if o.def == nil {
			continue
		}
		text, err := buildText(o.tag, o.def)
		if err != nil {
			return nil, err
		}
		o.set(text)
	}
	return entry, nil
}

// buildText converts a text definition. Markdown is rendered to HTML and
// emitted as an html construct.
func buildText(tag string, def *Text) (*atom.Text, error) {
	switch def.Type {
	case "", string(atom.ModeText):
		return atom.NewText(tag, atom.ModeText, def.Value), nil
	case string(atom.ModeHTML), string(atom.ModeXHTML):
		return atom.NewText(tag, atom.Mode(def.Type), def.Value), nil
	case modeMarkdown:
		var buf bytes.Buffer
		if err := getMarkdownRenderer().Convert([]byte(def.Value), &buf); err != nil {
			return nil, fmt.Errorf("%s: error rendering markdown: %w", tag, err)
		}
		return atom.NewText(tag, atom.ModeHTML, buf.String()), nil
	default:
		return nil, fmt.Errorf("%s: unknown text type %q", tag, def.Type)
	}
}

func buildPerson(def *Person) *atom.Person {
	return atom.NewPerson(def.Name).SetURI(def.URI).SetEmail(def.Email)
}

func buildLink(def *Link) *atom.Link {
	return atom.NewLink(def.Href).
		SetRel(def.Rel).
		SetType(def.Type).
		SetHreflang(def.Hreflang).
		SetTitle(def.Title).
		SetLength(def.Length)
}

func buildCategory(def *Category) *atom.Category {
	return atom.NewCategory(def.Term).SetScheme(def.Scheme).SetLabel(def.Label)
}
