// Package config loads psdui.toml.
//
// The configuration replaces ambient global lookups: the font table and
// the list of tracked documents are read once and passed explicitly to the
// pipeline. A missing file is not an error; every field has a default.
//
//	export_dir_pattern = "ImportedTextures-{name}"
//	prefab_pattern     = "{name}.prefab.json"
//	canvas_pattern     = "{name}.canvas.json"
//	tracked            = ["ui/main.yaml"]
//	font_scale         = 4.16
//	registry           = ".psdui/assets.db"
//
//	[[fonts]]
//	name = "ArialMT"
//	path = "fonts/arial.ttf"
//
// Relative paths (tracked documents, fonts, registry) are resolved against
// the directory holding the configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/fonts"
)

// FileName is the configuration file looked up by default.
const FileName = "psdui.toml"

// Defaults.
const (
	DefaultExportDirPattern = "ImportedTextures-{name}"
	DefaultPrefabPattern    = "{name}.prefab.json"
	DefaultCanvasPattern    = "{name}.canvas.json"
	DefaultFontScale        = 4.16
)

// Font maps a document font name to a font file.
type Font struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Config is the parsed configuration.
type Config struct {
	ExportDirPattern string   `toml:"export_dir_pattern"`
	PrefabPattern    string   `toml:"prefab_pattern"`
	CanvasPattern    string   `toml:"canvas_pattern"`
	Tracked          []string `toml:"tracked"`
	FontScale        float64  `toml:"font_scale"`
	Registry         string   `toml:"registry"` // SQLite path; empty keeps the registry in memory
	Fonts            []Font   `toml:"fonts"`

	dir string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ExportDirPattern: DefaultExportDirPattern,
		PrefabPattern:    DefaultPrefabPattern,
		CanvasPattern:    DefaultCanvasPattern,
		FontScale:        DefaultFontScale,
		dir:              ".",
	}
}

// Load reads the configuration at path. A missing file yields [Default]
// with relative paths resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	for field, pattern := range map[string]string{
		"export_dir_pattern": c.ExportDirPattern,
		"prefab_pattern":     c.PrefabPattern,
		"canvas_pattern":     c.CanvasPattern,
	} {
		if !strings.Contains(pattern, "{name}") {
			return errors.New(errors.ErrCodeInvalidConfig, "%s %q must contain {name}", field, pattern)
		}
		if strings.ContainsAny(pattern, `/\`) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s %q must not contain path separators", field, pattern)
		}
	}
	if c.FontScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font_scale must be positive, got %g", c.FontScale)
	}
	for i, f := range c.Fonts {
		if f.Name == "" || f.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "fonts[%d]: name and path are required", i)
		}
	}
	return nil
}

// Dir returns the directory relative paths are resolved against.
func (c *Config) Dir() string { return c.dir }

// resolve makes p absolute relative to the configuration directory.
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.dir, p)
}

// FontTable builds the font lookup table.
func (c *Config) FontTable() *fonts.Table {
	table := fonts.NewTable()
	for _, f := range c.Fonts {
		table.Add(fonts.Font{Name: f.Name, Path: c.resolve(f.Path)})
	}
	return table
}

// TrackedPaths returns the tracked documents resolved against the
// configuration directory.
func (c *Config) TrackedPaths() []string {
	out := make([]string, len(c.Tracked))
	for i, p := range c.Tracked {
		out[i] = c.resolve(p)
	}
	return out
}

// IsTracked reports whether docPath is one of the tracked documents.
func (c *Config) IsTracked(docPath string) bool {
	want := absPath(docPath)
	for _, p := range c.TrackedPaths() {
		if absPath(p) == want {
			return true
		}
	}
	return false
}

// RegistryPath returns the SQLite registry path, or "" for in-memory.
func (c *Config) RegistryPath() string {
	if c.Registry == "" {
		return ""
	}
	return c.resolve(c.Registry)
}

// ExportDir returns the directory the assets of docPath are exported to.
func (c *Config) ExportDir(docPath string) string {
	return siblingPath(docPath, c.ExportDirPattern)
}

// PrefabPath returns where the scene of docPath is saved.
func (c *Config) PrefabPath(docPath string) string {
	return siblingPath(docPath, c.PrefabPattern)
}

// CanvasPath returns where the canvas-wrapped scene of docPath is saved.
func (c *Config) CanvasPath(docPath string) string {
	return siblingPath(docPath, c.CanvasPattern)
}

// DocumentName returns the file name of docPath without its extension.
func DocumentName(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func siblingPath(docPath, pattern string) string {
	name := strings.ReplaceAll(pattern, "{name}", DocumentName(docPath))
	return filepath.Join(filepath.Dir(docPath), name)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
