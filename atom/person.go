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

// Role selects the element a Person renders as.
type Role string

const (
	RoleAuthor      Role = "author"
	RoleContributor Role = "contributor"
)

// Person is an author or contributor.
type Person struct {
	name  string
	role  Role
	uri   string
	email string
}

func NewPerson(name string) *Person {
	return &Person{name: name, role: RoleAuthor}
}

func (p *Person) Name() string { return p.name }
func (p *Person) Role() Role { return p.role }
func (p *Person) URI() string { return p.uri }
func (p *Person) Email() string { return p.email }

func (p *Person) SetName(name string) *Person {
	p.name = name
	return p
}

func (p *Person) SetRole(role Role) *Person {
	p.role = role
	return p
}

func (p *Person) SetURI(uri string) *Person {
	p.uri = uri
	return p
}

func (p *Person) SetEmail(email string) *Person {
	p.email = email
	return p
}

func (p *Person) withRole(role Role) *Person {
	c := *p
	c.role = role
	return &c
}

func (p *Person) Render() *etree.Element {
	role := p.role
	if role == "" {
		role = RoleAuthor
	}
	doc := etree.NewDocument()
	el := doc.CreateElement(string(role))
	el.CreateElement("name").SetText(p.name)
	if p.uri != "" {
		el.CreateElement("uri").SetText(p.uri)
	}
	if p.email != "" {
		el.CreateElement("email").SetText(p.email)
	}
	return el
}
