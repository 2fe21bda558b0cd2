// Package content holds the portfolio panels shown on the desktop.
package content

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Item is a labelled row inside a section.
type Item struct {
	Label string `toml:"label" json:"label"`
	Value string `toml:"value" json:"value"`
}

// Section groups related items under a heading.
type Section struct {
	Title string `toml:"title" json:"title"`
	Items []Item `toml:"items" json:"items"`
	// Chart renders numeric item values as bars.
	Chart bool `toml:"chart" json:"chart"`
}

// Link is an external destination attached to a panel.
type Link struct {
	Label string `toml:"label" json:"label"`
	URL   string `toml:"url" json:"url"`
}

// Panel is a desktop icon and, when it has sections, the modal it opens.
type Panel struct {
	Slug       string    `toml:"slug" json:"slug"`
	Label      string    `toml:"label" json:"label"`
	Title      string    `toml:"title" json:"title"`
	Glyph      string    `toml:"glyph" json:"glyph"`
	Color      string    `toml:"color" json:"color"`
	Href       string    `toml:"href" json:"href"`
	Heading    string    `toml:"heading" json:"heading"`
	Subheading string    `toml:"subheading" json:"subheading"`
	Sections   []Section `toml:"sections" json:"sections"`
	Link       Link      `toml:"link" json:"link"`
	Note       string    `toml:"note" json:"note"`
}

// HasModal reports whether activating the panel opens a dialog.
func (p Panel) HasModal() bool {
	return len(p.Sections) > 0 || p.Heading != "" || p.Note != ""
}

// Validate checks the fields every panel needs.
func (p Panel) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("panel slug required")
	}
	if strings.TrimSpace(p.Label) == "" {
		return fmt.Errorf("panel %q: label required", p.Slug)
	}
	if !p.HasModal() && strings.TrimSpace(p.Href) == "" {
		return fmt.Errorf("panel %q: needs a href or modal content", p.Slug)
	}
	return nil
}

// ChartValues returns the numeric items of s. Non-numeric items are skipped.
func (s Section) ChartValues() ([]string, []float64) {
	labels := make([]string, 0, len(s.Items))
	values := make([]float64, 0, len(s.Items))
	for _, it := range s.Items {
		v, err := strconv.ParseFloat(strings.TrimSpace(it.Value), 64)
		if err != nil {
			continue
		}
		labels = append(labels, strings.TrimSuffix(it.Label, ":"))
		values = append(values, v)
	}
	return labels, values
}

type file struct {
	Panel []Panel `toml:"panel"`
}

// LoadFile reads panels from a TOML file of [[panel]] blocks. A missing file
// yields no panels and no error.
func LoadFile(path string) ([]Panel, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read panels: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes panels from TOML text.
func Parse(data string) ([]Panel, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("parse panels: %w", err)
	}
	for i := range f.Panel {
		f.Panel[i].Slug = strings.ToLower(strings.TrimSpace(f.Panel[i].Slug))
		if err := f.Panel[i].Validate(); err != nil {
			return nil, err
		}
	}
	return f.Panel, nil
}

// Merge returns base with overrides applied: a panel with a known slug
// replaces the original in place, new slugs are appended.
func Merge(base, overrides []Panel) []Panel {
	out := make([]Panel, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Slug] = i
	}
	for _, p := range overrides {
		if i, ok := index[p.Slug]; ok {
			out[i] = p
			continue
		}
		index[p.Slug] = len(out)
		out = append(out, p)
	}
	return out
}
