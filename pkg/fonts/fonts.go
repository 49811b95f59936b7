// Package fonts maps document font names to font files.
//
// A [Table] is built from configuration and passed explicitly to the scene
// builder and the preview renderer. Lookups are case-insensitive, matching
// how font names are written in layered documents ("ArialMT" and "arialmt"
// name the same font).
package fonts

import (
	"sort"
	"strings"
)

// Font is a resolved font reference.
type Font struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Table is a font lookup table. The zero value is an empty table.
type Table struct {
	byName map[string]Font
}

// NewTable builds a table from fonts. Later entries win on duplicate names.
func NewTable(fonts ...Font) *Table {
	t := &Table{byName: make(map[string]Font, len(fonts))}
	for _, f := range fonts {
		t.Add(f)
	}
	return t
}

// Add registers a font.
func (t *Table) Add(f Font) {
	if t.byName == nil {
		t.byName = make(map[string]Font)
	}
	t.byName[strings.ToLower(f.Name)] = f
}

// Lookup resolves a font name. It is safe on a nil table.
func (t *Table) Lookup(name string) (Font, bool) {
	if t == nil {
		return Font{}, false
	}
	f, ok := t.byName[strings.ToLower(name)]
	return f, ok
}

// Len returns the number of registered fonts.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// Fonts returns all fonts sorted by name.
func (t *Table) Fonts() []Font {
	if t == nil {
		return nil
	}
	out := make([]Font, 0, len(t.byName))
	for _, f := range t.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
