package scene

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/uitree"
)

// Canvas is a screen-space root that scales its content with the screen.
type Canvas struct {
	Name string `json:"name"`

	// ReferenceResolution is the design resolution; content scales to
	// match the screen width (MatchWidthOrHeight 0) or height (1).
	ReferenceResolution uitree.Vec2  `json:"reference_resolution"`
	MatchWidthOrHeight  float64      `json:"match_width_or_height"`
	Children            []*Container `json:"children"`
}

// NewCanvas creates a canvas for a document of the given size.
func NewCanvas(width, height float64) *Canvas {
	return &Canvas{
		Name:                "Canvas",
		ReferenceResolution: uitree.Vec2{X: width, Y: height},
	}
}

// Attach adds a scene to the canvas.
func (c *Canvas) Attach(root *Container) {
	c.Children = append(c.Children, root)
}

// Frame returns the canvas rect at reference resolution.
func (c *Canvas) Frame() uitree.Rect {
	return uitree.NewRect(0, 0, c.ReferenceResolution.X, c.ReferenceResolution.Y)
}

// Save writes a scene prefab as indented JSON, replacing any previous file.
func Save(path string, root *Container) error {
	return writeJSON(path, root)
}

// SaveCanvas writes a canvas as indented JSON.
func SaveCanvas(path string, canvas *Canvas) error {
	return writeJSON(path, canvas)
}

// Load reads a prefab written by [Save].
func Load(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "prefab not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	var root Container
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "prefab %s", path)
	}
	return &root, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
