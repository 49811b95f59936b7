package overlay

import (
	"slices"
	"strconv"
	"strings"
)

// Properties is the raw property bag of one layer record: property tag
// name to the element's text content.
type Properties map[string]string

// String returns the raw value of key, or "" when absent.
func (p Properties) String(key string) string {
	return p[key]
}

// Bool reports whether key holds "true" (case-insensitive). Any other
// value, including an absent key, is false.
func (p Properties) Bool(key string) bool {
	return strings.EqualFold(p[key], "true")
}

// Float parses key as a float. Absent or empty values return def.
func (p Properties) Float(key string, def float64) (float64, error) {
	v := strings.TrimSpace(p[key])
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

// Configs maps layer ids to their property bags. The zero value and a nil
// *Configs are both usable and empty.
type Configs struct {
	Layers map[int]Properties `json:"layers" msgpack:"layers"`
}

// NewConfigs returns an empty Configs.
func NewConfigs() *Configs {
	return &Configs{Layers: make(map[int]Properties)}
}

// Set stores the property bag for id, replacing any earlier record.
func (c *Configs) Set(id int, props Properties) {
	if c.Layers == nil {
		c.Layers = make(map[int]Properties)
	}
	c.Layers[id] = props
}

// Has reports whether a record exists for id.
func (c *Configs) Has(id int) bool {
	if c == nil {
		return false
	}
	_, ok := c.Layers[id]
	return ok
}

// Get returns the property bag for id, or an empty bag when absent.
func (c *Configs) Get(id int) Properties {
	if c == nil {
		return Properties{}
	}
	if props, ok := c.Layers[id]; ok {
		return props
	}
	return Properties{}
}

// Len returns the number of layer records.
func (c *Configs) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Layers)
}

// IDs returns the configured layer ids in ascending order.
func (c *Configs) IDs() []int {
	if c == nil {
		return nil
	}
	ids := make([]int, 0, len(c.Layers))
	for id := range c.Layers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
