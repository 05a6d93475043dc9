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
	"strconv"

	"github.com/beevik/etree"
)

const (
	RelAlternate = "alternate"
	RelSelf      = "self"
	RelEnclosure = "enclosure"
	RelRelated   = "related"
	RelVia       = "via"
)

// Link is a reference from an entry or feed to a Web resource.
// Optional attributes are only emitted when set.
type Link struct {
	href     string
	rel      string
	mimeType string
	hreflang string
	title    string
	length   int64
}

func NewLink(href string) *Link {
	return &Link{href: href}
}

func (l *Link) Href() string { return l.href }
func (l *Link) Rel() string { return l.rel }
func (l *Link) Type() string { return l.mimeType }
func (l *Link) Hreflang() string { return l.hreflang }
func (l *Link) Title() string { return l.title }
func (l *Link) Length() int64 { return l.length }

func (l *Link) SetHref(href string) *Link {
	l.href = href
	return l
}

func (l *Link) SetRel(rel string) *Link {
	l.rel = rel
	return l
}

func (l *Link) SetType(mimeType string) *Link {
	l.mimeType = mimeType
	return l
}

func (l *Link) SetHreflang(hreflang string) *Link {
	l.hreflang = hreflang
	return l
}

func (l *Link) SetTitle(title string) *Link {
	l.title = title
	return l
}

// SetLength sets the advisory length of the linked resource in bytes.
// Values <= 0 mean unknown.
func (l *Link) SetLength(length int64) *Link {
	l.length = length
	return l
}

func (l *Link) Render() *etree.Element {
	doc := etree.NewDocument()
	el := doc.CreateElement("link")
	el.CreateAttr("href", l.href)
	if l.rel != "" {
		el.CreateAttr("rel", l.rel)
	}
	if l.mimeType != "" {
		el.CreateAttr("type", l.mimeType)
	}
	if l.hreflang != "" {
		el.CreateAttr("hreflang", l.hreflang)
	}
	if l.title != "" {
		el.CreateAttr("title", l.title)
	}
	if l.length > 0 {
		el.CreateAttr("length", strconv.FormatInt(l.length, 10))
	}
	return el
}
