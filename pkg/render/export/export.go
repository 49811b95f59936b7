// Package export writes the rasters of a built tree as PNG assets.
//
// The export pass walks the tree with a [Visitor]. For every image node
// that is not skipped, is not an empty graphic and still holds its raster
// in memory, it writes {prefix}{name}.png into the output directory,
// announces the file to the asset registry, and commits the node to the
// written path. Group names are concatenated onto the prefix for their
// subtree so nested layers with equal names do not collide. Skipped groups
// are not entered.
//
// Running the pass again over the same tree is a no-op for nodes that are
// already on disk.
package export

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/errors"
	"github.com/matzehuels/psdui/pkg/uitree"
	"github.com/matzehuels/psdui/pkg/visit"
)

// Option configures a Visitor.
type Option func(*Visitor)

// WithPrefix sets the initial file name prefix.
func WithPrefix(prefix string) Option {
	return func(v *Visitor) { v.prefix = prefix }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(v *Visitor) {
		if l != nil {
			v.logger = l
		}
	}
}

// Stats summarizes an export pass.
type Stats struct {
	Written []string // asset paths in visit order
	Skipped int      // image nodes not written
}

// Visitor is the export pass. Create one with [New].
type Visitor struct {
	dir      string
	prefix   string
	registry assetdb.Registry
	logger   *log.Logger
	stats    *Stats
}

// New creates an export visitor writing into dir.
func New(dir string, registry assetdb.Registry, opts ...Option) *Visitor {
	v := &Visitor{
		dir:      dir,
		registry: registry,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		stats:    &Stats{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Tree exports every image of root and returns the pass statistics.
func Tree(root *uitree.Root, dir string, registry assetdb.Registry, opts ...Option) (*Stats, error) {
	v := New(dir, registry, opts...)
	if err := visit.Tree(root, v); err != nil {
		return v.stats, err
	}
	return v.stats, nil
}

// Stats returns the statistics shared by this visitor and its children.
func (v *Visitor) Stats() *Stats { return v.stats }

// child returns a visitor for a group's subtree.
func (v *Visitor) child(groupName string) *Visitor {
	c := *v
	c.prefix = v.prefix + groupName
	return &c
}

func (v *Visitor) VisitGroup(n *uitree.GroupNode) error {
	if n.Skipped {
		v.logger.Debug("skip group", "name", n.Name)
		return nil
	}
	return visit.Nodes(n.Children, v.child(n.Name))
}

func (v *Visitor) VisitText(*uitree.TextNode) error { return nil }

func (v *Visitor) VisitImage(n *uitree.ImageNode) error {
	raster := n.Raster()
	if n.Skipped || n.Widget == uitree.WidgetEmptyGraphic || raster == nil {
		v.stats.Skipped++
		return nil
	}
	if raster.Empty() {
		v.logger.Debug("skip empty raster", "layer", n.ID, "name", n.Name)
		v.stats.Skipped++
		return nil
	}

	filename := v.prefix + n.Name + ".png"
	if err := errors.ValidateLayerName(filename); err != nil {
		return errors.NewLayerError(errors.ErrCodeInvalidInput, n.ID, n.Name,
			"cannot export as %q: %s", filename, errors.UserMessage(err))
	}
	path := filepath.Join(v.dir, filename)

	if err := imaging.Save(raster.Image(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := v.registry.Refresh(path); err != nil {
		return fmt.Errorf("register %s: %w", path, err)
	}
	n.Commit(path)

	v.stats.Written = append(v.stats.Written, path)
	v.logger.Debug("exported", "layer", n.ID, "path", path, "size", fmt.Sprintf("%dx%d", raster.Width, raster.Height))
	return nil
}

var _ visit.Visitor = (*Visitor)(nil)
