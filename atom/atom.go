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

// Package atom builds Atom (RFC 4287) documents.
//
// Every type renders itself into a standalone XML tree. Composite types
// render their children independently and adopt copies of the resulting
// elements, so a child can be rendered into any number of parents.
package atom

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beevik/etree"
)

const (
	Namespace      = "http://www.w3.org/2005/Atom"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
	ContentType    = "application/atom+xml; charset=utf-8"
	DefaultCharset = "UTF-8"
)

var (
	ErrMissingField = errors.New("missing mandatory field")
	ErrNilEntry     = errors.New("entry is nil")
)

// Sink persists a serialized document, replacing whatever the
// destination held before.
type Sink interface {
	WriteAll(ctx context.Context, destination string, data []byte) error
}

// FieldError reports a mandatory field that was not provided when
// constructing an Entry or a Feed.
type FieldError struct {
	Type  string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, ErrMissingField)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// ValidityWarning is returned alongside a rendered entry that has neither
// content nor an alternate link. The rendered element is still usable.
type ValidityWarning struct {
	EntryID string
}

func (w *ValidityWarning) Error() string {
	return fmt.Sprintf("entry %s has neither content nor an alternate link", w.EntryID)
}

// FormatTime formats t as an RFC 3339 timestamp in t's own location.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// adopt appends a deep copy of child to parent. child stays attached to
// the document it was rendered into.
func adopt(parent, child *etree.Element) {
	parent.AddChild(child.Copy())
}
