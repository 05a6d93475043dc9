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
	"github.com/beevik/etree"
)

// Mode is the type of a text construct.
type Mode string

const (
	ModeText  Mode = "text"
	ModeHTML  Mode = "html"
	ModeXHTML Mode = "xhtml"
)

// Text is a text construct: title, subtitle, summary, content or rights.
type Text struct {
	tag     string
	mode    Mode
	content string
	charset string
}

func NewText(tag string, mode Mode, content string) *Text {
	return &Text{
		tag:     tag,
		mode:    mode,
		content: content,
		charset: DefaultCharset,
	}
}

func (t *Text) Tag() string { return t.tag }
func (t *Text) Mode() Mode { return t.mode }
func (t *Text) Content() string { return t.content }
func (t *Text) Charset() string { return t.charset }

func (t *Text) SetTag(tag string) *Text {
	t.tag = tag
	return t
}

func (t *Text) SetMode(mode Mode) *Text {
	t.mode = mode
	return t
}

func (t *Text) SetContent(content string) *Text {
	t.content = content
	return t
}

func (t *Text) SetCharset(charset string) *Text {
	t.charset = charset
	return t
}

// Render returns a detached element named after the construct's tag.
// HTML content is entity-escaped; XHTML content is entity-escaped and
// wrapped in an XHTML div. Any other mode is emitted verbatim.
func (t *Text) Render() *etree.Element {
	doc := etree.NewDocument()
	el := doc.CreateElement(t.tag)
	el.CreateAttr("type", string(t.mode))

	switch t.mode {
	case ModeHTML:
		el.SetText(EscapeEntities(t.content, t.charset))
	case ModeXHTML:
		div := el.CreateElement("div")
		div.CreateAttr("xmlns", XHTMLNamespace)
		div.SetText(EscapeEntities(t.content, t.charset))
	default:
		el.SetText(t.content)
	}
	return el
}
