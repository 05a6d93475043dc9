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
	"testing"

	"github.com/beevik/etree"
)

func serialize(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		panic(err)
	}
	return s
}

func TestEscapeEntities(t *testing.T) {
	tests := []struct {
		in      string
		charset string
		out     string
	}{
		{"", "UTF-8", ""},
		{"plain", "UTF-8", "plain"},
		{"<b>bold</b>", "UTF-8", "&lt;b&gt;bold&lt;/b&gt;"},
		{"fish & chips", "UTF-8", "fish &amp; chips"},
		{`"quoted" 'single'`, "UTF-8", `"quoted" 'single'`},
		{"café", "UTF-8", "caf&eacute;"},
		{"© 2025 — all rights", "UTF-8", "&copy; 2025 &mdash; all rights"},
		{"α≤β", "UTF-8", "&alpha;&le;&beta;"},
		{"ς Σ", "UTF-8", "&sigmaf; &Sigma;"},
		{"5 €", "utf-8", "5 &euro;"},
		{"caf\xe9", "ISO-8859-1", "caf&eacute;"},
		{"ünknown", "no-such-charset", "&uuml;nknown"},
		{"日本", "UTF-8", "日本"},
	}
	for _, test := range tests {
		result := EscapeEntities(test.in, test.charset)
		if result != test.out {
			t.Errorf("EscapeEntities(%q, %q) = %q; want %q", test.in, test.charset, result, test.out)
		}
	}
}

func TestEntityTable(t *testing.T) {
	if len(latin1Entities) != 96 {
		t.Fatalf("latin1Entities has %d names; want 96", len(latin1Entities))
	}
	tests := map[rune]string{
		0xA0:  "nbsp",
		0xBF:  "iquest",
		0xC0:  "Agrave",
		0xD7:  "times",
		0xF7:  "divide",
		0xFF:  "yuml",
		0x391: "Alpha",
		0x3A9: "Omega",
		0x3C9: "omega",
	}
	for r, want := range tests {
		if got := namedEntities[r]; got != want {
			t.Errorf("namedEntities[%U] = %q; want %q", r, got, want)
		}
	}
	if _, ok := namedEntities[0x3A2]; ok {
		t.Errorf("namedEntities contains unassigned U+03A2")
	}
}

func TestTextRender(t *testing.T) {
	tests := []struct {
		mode Mode
		in   string
		out  string
	}{
		{ModeText, "My Feed", `<title type="text">My Feed</title>`},
		{ModeText, "a < b & c", `<title type="text">a &lt; b &amp; c</title>`},
		{ModeHTML, `<p class="x">hi</p>`, `<title type="html">&amp;lt;p class="x"&amp;gt;hi&amp;lt;/p&amp;gt;</title>`},
		{ModeXHTML, "<em>hi</em>", `<title type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml">&amp;lt;em&amp;gt;hi&amp;lt;/em&amp;gt;</div></title>`},
		{Mode("custom"), "<raw>", `<title type="custom">&lt;raw&gt;</title>`},
	}
	for _, test := range tests {
		result := serialize(NewText("title", test.mode, test.in).Render())
		if result != test.out {
			t.Errorf("render(%s, %q) = %q; want %q", test.mode, test.in, result, test.out)
		}
	}
}

func TestTextRenderTree(t *testing.T) {
	el := NewText("content", ModeHTML, `<b>"x"</b> & é`).Render()
	if el.Tag != "content" {
		t.Errorf("tag = %q; want content", el.Tag)
	}
	if got := el.SelectAttrValue("type", ""); got != "html" {
		t.Errorf("type = %q; want html", got)
	}
	if got, want := el.Text(), `&lt;b&gt;"x"&lt;/b&gt; &amp; &eacute;`; got != want {
		t.Errorf("text = %q; want %q", got, want)
	}

	el = NewText("summary", ModeXHTML, "a<b").Render()
	div := el.SelectElement("div")
	if div == nil {
		t.Fatalf("xhtml summary has no div")
	}
	if got := div.SelectAttrValue("xmlns", ""); got != XHTMLNamespace {
		t.Errorf("div xmlns = %q; want %q", got, XHTMLNamespace)
	}
	if got := div.Text(); got != "a&lt;b" {
		t.Errorf("div text = %q; want %q", got, "a&lt;b")
	}
	if el.Text() != "" {
		t.Errorf("xhtml summary has text %q outside the div", el.Text())
	}
}

func TestTextSetters(t *testing.T) {
	text := NewText("title", ModeText, "a").SetTag("rights").SetMode(ModeHTML).SetContent("b").SetCharset("ISO-8859-1")
	if text.Tag() != "rights" || text.Mode() != ModeHTML || text.Content() != "b" || text.Charset() != "ISO-8859-1" {
		t.Errorf("setters did not apply: %+v", text)
	}
	if NewText("title", ModeText, "").Charset() != DefaultCharset {
		t.Errorf("default charset is not %s", DefaultCharset)
	}
}
