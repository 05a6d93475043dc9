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

// Category tags an entry or feed with a term from an optional scheme.
type Category struct {
	term   string
	scheme string
	label  string
}

func NewCategory(term string) *Category {
	return &Category{term: term}
}

func (c *Category) Term() string { return c.term }
func (c *Category) Scheme() string { return c.scheme }
func (c *Category) Label() string { return c.label }

func (c *Category) SetTerm(term string) *Category {
	c.term = term
	return c
}

func (c *Category) SetScheme(scheme string) *Category {
	c.scheme = scheme
	return c
}

func (c *Category) SetLabel(label string) *Category {
	c.label = label
	return c
}

func (c *Category) Render() *etree.Element {
	doc := etree.NewDocument()
	el := doc.CreateElement("category")
	el.CreateAttr("term", c.term)
	if c.scheme != "" {
		el.CreateAttr("scheme", c.scheme)
	}
	if c.label != "" {
		el.CreateAttr("label", c.label)
	}
	return el
}
