package document

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/psdui/pkg/errors"
)

// Load reads a document fixture from path. YAML and JSON are both
// accepted (JSON is valid YAML). The document name defaults to the file's
// base name without extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse decodes a document fixture.
//
// Channel planes are base64 (!!binary) strings. A layer may give a solid
// "fill: [r, g, b, a]" instead of planes; Parse expands it to full planes
// sized to the layer's bounding box.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document size must be positive, got %dx%d", doc.Width, doc.Height)
	}
	return &doc, nil
}

// =============================================================================
// YAML decoding
// =============================================================================

// UnmarshalYAML decodes a section marker from its fixture spelling.
func (s *SectionType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	t, err := ParseSectionType(raw)
	if err != nil {
		return err
	}
	*s = t
	return nil
}

// MarshalYAML encodes a section marker as its fixture spelling.
func (s SectionType) MarshalYAML() (any, error) {
	return s.String(), nil
}

// rawLayer has Layer's fields without its methods, so decoding into it
// does not recurse into UnmarshalYAML.
type rawLayer Layer

// layerFixture is the on-disk shape of a layer: Layer plus the fixture
// conveniences that are resolved during decoding.
type layerFixture struct {
	rawLayer `yaml:",inline"`
	Fill     []uint8 `yaml:"fill"`
}

// UnmarshalYAML decodes a layer. Layers are visible unless the fixture
// says otherwise.
func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	fixture := layerFixture{rawLayer: rawLayer{Visible: true}}
	if err := value.Decode(&fixture); err != nil {
		return err
	}
	*l = Layer(fixture.rawLayer)

	if len(fixture.Fill) > 0 && len(l.Channels) == 0 {
		if len(fixture.Fill) != 4 {
			return errors.New(errors.ErrCodeInvalidDocument, "layer %d: fill needs 4 components, got %d", l.ID, len(fixture.Fill))
		}
		l.Channels = solidPlanes(l.Width(), l.Height(), fixture.Fill)
	}
	return nil
}

func solidPlanes(w, h int, rgba []uint8) map[ChannelType][]byte {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	planes := make(map[ChannelType][]byte, 4)
	for i, t := range []ChannelType{ChannelRed, ChannelGreen, ChannelBlue, ChannelAlpha} {
		plane := make([]byte, w*h)
		for j := range plane {
			plane[j] = rgba[i]
		}
		planes[t] = plane
	}
	return planes
}
