// Package overlay parses the layer configuration overlay embedded in a
// document's XMP metadata.
//
// The overlay is an optional annotation: designers attach per-layer
// properties (anchors, pivots, skip flags, scroll and grid settings) to a
// document by adding records to a namespaced block of the XMP packet:
//
//	<agugu:Config rdf:parseType="Resource">
//	  <agugu:Layers>
//	    <rdf:Bag>
//	      <rdf:li rdf:parseType="Resource">
//	        <agugu:Id>45</agugu:Id>
//	        <agugu:Properties rdf:parseType="Resource">
//	          <agugu:xAnchor>left</agugu:xAnchor>
//	          <agugu:yAnchor>top</agugu:yAnchor>
//	        </agugu:Properties>
//	      </rdf:li>
//	    </rdf:Bag>
//	  </agugu:Layers>
//	</agugu:Config>
//
// Missing structure at any level yields an empty [Configs], never an error.
// The only fatal condition is a record whose Id is not an integer: without
// a valid id the record cannot be attributed to a layer.
package overlay

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/psdui/pkg/errors"
)

// XML namespaces used by the overlay.
const (
	Namespace    = "http://www.agugu.org/"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

const (
	configTag     = "Config"
	layersTag     = "Layers"
	bagTag        = "Bag"
	idTag         = "Id"
	propertiesTag = "Properties"
)

// Property tags recognized by the tree builder.
const (
	PropIsSkipped              = "isSkipped"
	PropWidgetType             = "widgetType"
	PropXAnchor                = "xAnchor"
	PropYAnchor                = "yAnchor"
	PropXPivot                 = "xPivot"
	PropYPivot                 = "yPivot"
	PropHasScrollRect          = "hasScrollRect"
	PropIsScrollRectHorizontal = "isScrollRectHorizontal"
	PropIsScrollRectVertical   = "isScrollRectVertical"
	PropHasGrid                = "hasGrid"
	PropGridCellSizeX          = "gridCellSizeX"
	PropGridCellSizeY          = "gridCellSizeY"
	PropGridSpacingX           = "gridSpacingX"
	PropGridSpacingY           = "gridSpacingY"
)

// Parse parses an XMP packet into layer configs.
//
// Records without an Id or without a Properties element are skipped.
// Within a record, duplicate property tags keep the last value; across
// records, a repeated id replaces the earlier record. XMP that is not
// well-formed XML is treated like XMP without an overlay.
func Parse(xmp string) (*Configs, error) {
	result := NewConfigs()
	if strings.TrimSpace(xmp) == "" {
		return result, nil
	}

	doc, err := readTree(strings.NewReader(xmp))
	if err != nil {
		return result, nil
	}

	configRoot := doc.descendant(Namespace, configTag)
	if configRoot == nil {
		return result, nil
	}
	layersRoot := configRoot.descendant(Namespace, layersTag)
	if layersRoot == nil {
		return result, nil
	}
	bag := layersRoot.child(RDFNamespace, bagTag)
	if bag == nil {
		return result, nil
	}

	for _, item := range bag.children {
		idElem := item.child(Namespace, idTag)
		if idElem == nil {
			continue
		}
		raw := idElem.value()
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedOverlay, err, "overlay record id %q is not an integer", raw)
		}

		propsRoot := item.child(Namespace, propertiesTag)
		if propsRoot == nil {
			continue
		}

		props := make(Properties, len(propsRoot.children))
		for _, prop := range propsRoot.children {
			props[prop.name.Local] = prop.value()
		}
		result.Set(int(id), props)
	}

	return result, nil
}

// =============================================================================
// Minimal element tree
// =============================================================================

// element is a namespace-resolved XML element. text accumulates the
// character data of the element and all of its descendants in document
// order.
type element struct {
	name     xml.Name
	children []*element
	text     strings.Builder
}

func (e *element) value() string {
	return e.text.String()
}

// child returns the first direct child with the given name.
func (e *element) child(space, local string) *element {
	for _, c := range e.children {
		if c.name.Space == space && c.name.Local == local {
			return c
		}
	}
	return nil
}

// descendant returns the first descendant (depth-first, document order)
// with the given name.
func (e *element) descendant(space, local string) *element {
	for _, c := range e.children {
		if c.name.Space == space && c.name.Local == local {
			return c
		}
		if d := c.descendant(space, local); d != nil {
			return d
		}
	}
	return nil
}

// readTree decodes r into an element tree under a synthetic document node.
func readTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	doc := &element{}
	stack := []*element{doc}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			// Skip the synthetic document node.
			for _, open := range stack[1:] {
				open.text.Write(t)
			}
		}
	}

	return doc, nil
}
