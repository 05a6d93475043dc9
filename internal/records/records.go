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

// Package records loads feed entries from a SQL database.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"src.agwa.name/go-dbutil"

	"software.sslmate.com/src/atomgen/atom"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Drivers lists the database drivers entries can be loaded from.
var Drivers = []string{"postgres", "sqlite3"}

// Queries passed to Load must return exactly these columns. Columns that
// have no value for a database may be selected as NULL.
type entryRow struct {
	ID          string           `sql:"id"`
	Title       string           `sql:"title"`
	Updated     time.Time        `sql:"updated"`
	Content     sql.Null[string] `sql:"content"`
	ContentType sql.Null[string] `sql:"content_type"`
	Link        sql.Null[string] `sql:"link"`
	Summary     sql.Null[string] `sql:"summary"`
	Author      sql.Null[string] `sql:"author"`
	Category    sql.Null[string] `sql:"category"`
}

func Open(driver, dsn string) (*sql.DB, error) {
	if !lo.Contains(Drivers, driver) {
		return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
	}
	return sql.Open(driver, dsn)
}

// Load runs query and converts each row into an entry, in row order.
func Load(ctx context.Context, db *sql.DB, query string, args ...any) ([]*atom.Entry, error) {
	var rows []entryRow
	if err := dbutil.QueryAll(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error querying entries: %w", err)
	}
	entries := make([]*atom.Entry, 0, len(rows))
	for i, row := range rows {
		entry, err := row.entry()
		if err != nil {
			return nil, fmt.Errorf("row %d (id %q): %w", i, row.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (row *entryRow) entry() (*atom.Entry, error) {
	entry, err := atom.NewEntry(row.ID, atom.NewText("title", atom.ModeText, row.Title), row.Updated)
	if err != nil {
		return nil, err
	}
	for _, name := range splitList(row.Author.V) {
		entry.AddAuthor(atom.NewPerson(name))
	}
	if row.Content.Valid {
		mode := atom.ModeText
		if row.ContentType.Valid && row.ContentType.V != "" {
			mode = atom.Mode(row.ContentType.V)
		}
		entry.SetContent(atom.NewText("content", mode, row.Content.V))
	}
	if row.Link.Valid && row.Link.V != "" {
		entry.AddLink(atom.NewLink(row.Link.V).SetRel(atom.RelAlternate))
	}
	if row.Summary.Valid && row.Summary.V != "" {
		entry.SetSummary(atom.NewText("summary", atom.ModeText, row.Summary.V))
	}
	for _, term := range splitList(row.Category.V) {
		entry.AddCategory(atom.NewCategory(term))
	}
	return entry, nil
}

// splitList splits a comma-separated column value, dropping blanks.
func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
