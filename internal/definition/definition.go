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

// Package definition reads feed definition files and turns them into
// atom.Feed values.
package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feeds []Feed `json:"feeds" yaml:"feeds"`
}

type Feed struct {
	ID           string     `json:"id" yaml:"id"`
	Path         string     `json:"path" yaml:"path"`
	Title        Text       `json:"title" yaml:"title"`
	Subtitle     *Text      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Rights       *Text      `json:"rights,omitempty" yaml:"rights,omitempty"`
	Updated      time.Time  `json:"updated,omitzero" yaml:"updated,omitempty"`
	Author       Person     `json:"author" yaml:"author"`
	Contributors []Person   `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Categories   []Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	Logo         string     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Icon         string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Charset      string     `json:"charset,omitempty" yaml:"charset,omitempty"`
	Generator    string     `json:"generator,omitempty" yaml:"generator,omitempty"`
	Gzip         bool       `json:"gzip,omitempty" yaml:"gzip,omitempty"`
	Entries      []Entry    `json:"entries,omitempty" yaml:"entries,omitempty"`
	Records      *Records   `json:"records,omitempty" yaml:"records,omitempty"`
}

type Entry struct {
	ID           string     `json:"id" yaml:"id"`
	Title        Text       `json:"title" yaml:"title"`
	Updated      time.Time  `json:"updated" yaml:"updated"`
	Published    time.Time  `json:"published,omitzero" yaml:"published,omitempty"`
	Authors      []Person   `json:"authors,omitempty" yaml:"authors,omitempty"`
	Contributors []Person   `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Content      *Text      `json:"content,omitempty" yaml:"content,omitempty"`
	Summary      *Text      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Rights       *Text      `json:"rights,omitempty" yaml:"rights,omitempty"`
	Links        []Link     `json:"links,omitempty" yaml:"links,omitempty"`
	Categories   []Category `json:"categories,omitempty" yaml:"categories,omitempty"`
}

type Person struct {
	Name  string `json:"name" yaml:"name"`
	URI   string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

type Link struct {
	Href     string `json:"href" yaml:"href"`
	Rel      string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Hreflang string `json:"hreflang,omitempty" yaml:"hreflang,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Length   int64  `json:"length,omitempty" yaml:"length,omitempty"`
}

type Category struct {
	Term   string `json:"term" yaml:"term"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Records selects entries from a database. See package records for the
// columns Query must return.
type Records struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
	Query  string `json:"query" yaml:"query"`
}

// Text is a text construct. In definition files it is either a plain
// string, meaning type "text", or an object with type and value.
type Text struct {
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Value string `json:"value" yaml:"value"`
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text{Value: s}
		return nil
	}
	type plain Text
	return json.Unmarshal(data, (*plain)(t))
}

func (t *Text) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = Text{Value: value.Value}
		return nil
	}
	type plain Text
	return value.Decode((*plain)(t))
}

// Load reads a definition file. Files ending in .yaml or .yml are YAML,
// everything else is JSON.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return cfg, nil
}
