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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"software.sslmate.com/src/atomgen/atom"
	"software.sslmate.com/src/atomgen/internal/records"
)

const jsonDefinition = `{
	"feeds": [{
		"id": "urn:x",
		"path": "/out/feed.xml",
		"title": "My Feed",
		"subtitle": {"type": "html", "value": "<i>news</i>"},
		"author": {"name": "Alice", "email": "alice@example.com"},
		"logo": "/logo.png",
		"gzip": true,
		"entries": [
			{
				"id": "e1",
				"title": "Hello",
				"updated": "2023-11-14T22:13:20Z",
				"links": [{"href": "http://x/e1", "rel": "alternate", "length": 10}]
			},
			{
				"id": "e2",
				"title": {"type": "markdown", "value": "*Second*"},
				"updated": "2023-11-15T08:00:00Z",
				"content": {"type": "markdown", "value": "Some **bold** text"},
				"categories": [{"term": "go", "label": "Go"}]
			}
		]
	}]
}`

const yamlDefinition = `
feeds:
  - id: urn:y
    path: s3://bucket/feed.xml
    title:
      type: text
      value: YAML Feed
    updated: 2024-01-02T03:04:05Z
    author:
      name: Bob
    entries:
      - id: y1
        title: First
        updated: 2024-01-01T00:00:00Z
        content: plain body
`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeFile(t, "feeds.json", jsonDefinition))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if len(cfg.Feeds) != 1 {
		t.Fatalf("loaded %d feeds; want 1", len(cfg.Feeds))
	}
	f := cfg.Feeds[0]
	if f.Title != (Text{Value: "My Feed"}) {
		t.Errorf("title = %+v", f.Title)
	}
	if f.Subtitle == nil || *f.Subtitle != (Text{Type: "html", Value: "<i>news</i>"}) {
		t.Errorf("subtitle = %+v", f.Subtitle)
	}
	if !f.Gzip || len(f.Entries) != 2 || f.Entries[0].Links[0].Length != 10 {
		t.Errorf("feed = %+v", f)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "feeds.yaml", yamlDefinition))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	f := cfg.Feeds[0]
	if f.ID != "urn:y" || f.Title.Value != "YAML Feed" || f.Author.Name != "Bob" {
		t.Errorf("feed = %+v", f)
	}
	if !f.Updated.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("updated = %v", f.Updated)
	}
	if len(f.Entries) != 1 || f.Entries[0].Content == nil || f.Entries[0].Content.Value != "plain body" {
		t.Errorf("entries = %+v", f.Entries)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load(writeFile(t, "feeds.json", `{"feeds": [`)); err == nil {
		t.Errorf("Load accepted truncated JSON")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("Load accepted a missing file")
	}
}

func TestBuild(t *testing.T) {
	cfg, err := Load(writeFile(t, "feeds.json", jsonDefinition))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	feed, err := Build(context.Background(), &cfg.Feeds[0])
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	if want := time.Date(2023, 11, 15, 8, 0, 0, 0, time.UTC); !feed.Updated().Equal(want) {
		t.Errorf("updated = %v; want latest entry time %v", feed.Updated(), want)
	}
	if feed.Logo() != "/logo.png" || feed.Author().Email() != "alice@example.com" {
		t.Errorf("feed metadata not carried over")
	}
	entries := feed.Entries()
	if len(entries) != 2 || entries[0].ID() != "e1" || entries[1].ID() != "e2" {
		t.Fatalf("entries out of order")
	}
	if entries[0].Links()[0].Rel() != atom.RelAlternate || entries[0].Links()[0].Length() != 10 {
		t.Errorf("e1 link = %+v", entries[0].Links()[0])
	}
	content := entries[1].Content()
	if content.Mode() != atom.ModeHTML || !strings.Contains(content.Content(), "<strong>bold</strong>") {
		t.Errorf("markdown content = %s %q", content.Mode(), content.Content())
	}
	if title := entries[1].Title(); title.Mode() != atom.ModeHTML || !strings.Contains(title.Content(), "<em>Second</em>") {
		t.Errorf("markdown title = %s %q", title.Mode(), title.Content())
	}

	_, warnings, err := feed.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %s", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestBuildUpdatedFallback(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	feed, err := Build(context.Background(), &Feed{ID: "urn:z", Path: "/z.xml", Title: Text{Value: "z"}, Author: Person{Name: "Z"}})
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	if !feed.Updated().Equal(fixed) {
		t.Errorf("updated = %v; want %v", feed.Updated(), fixed)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Feed
	}{
		{"missing author", Feed{ID: "urn:a", Path: "/a", Title: Text{Value: "a"}}},
		{"missing path", Feed{ID: "urn:a", Title: Text{Value: "a"}, Author: Person{Name: "A"}}},
		{"unknown text type", Feed{ID: "urn:a", Path: "/a", Title: Text{Type: "rtf", Value: "a"}, Author: Person{Name: "A"}}},
		{"entry without id", Feed{ID: "urn:a", Path: "/a", Title: Text{Value: "a"}, Author: Person{Name: "A"},
			Entries: []Entry{{Title: Text{Value: "e"}, Updated: time.Now()}}}},
		{"entry without updated", Feed{ID: "urn:a", Path: "/a", Title: Text{Value: "a"}, Author: Person{Name: "A"},
			Entries: []Entry{{ID: "e", Title: Text{Value: "e"}}}}},
		{"unknown driver", Feed{ID: "urn:a", Path: "/a", Title: Text{Value: "a"}, Author: Person{Name: "A"},
			Records: &Records{Driver: "oracle", DSN: "x", Query: "SELECT 1"}}},
	}
	for _, test := range tests {
		if _, err := Build(context.Background(), &test.def); err == nil {
			t.Errorf("%s: Build succeeded", test.name)
		}
	}
}

func TestBuildWithRecords(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "entries.db")
	db, err := records.Open("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE posts (slug TEXT, title TEXT, published TIMESTAMP, body TEXT)`)
	if err == nil {
		_, err = db.Exec(`INSERT INTO posts VALUES ('db1', 'From DB', ?, 'body')`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	}
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	def := Feed{
		ID:     "urn:db",
		Path:   "/db.xml",
		Title:  Text{Value: "db"},
		Author: Person{Name: "DB"},
		Entries: []Entry{
			{ID: "inline", Title: Text{Value: "inline"}, Updated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Content: &Text{Value: "x"}},
		},
		Records: &Records{
			Driver: "sqlite3",
			DSN:    dsn,
			Query:  `SELECT slug AS id, title, published AS updated, body AS content, NULL AS content_type, NULL AS link, NULL AS summary, NULL AS author, NULL AS category FROM posts`,
		},
	}
	feed, err := Build(context.Background(), &def)
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	entries := feed.Entries()
	if len(entries) != 2 || entries[0].ID() != "inline" || entries[1].ID() != "db1" {
		t.Fatalf("entries = %v", entries)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !feed.Updated().Equal(want) {
		t.Errorf("updated = %v; want %v", feed.Updated(), want)
	}
}
