package uitree

// XAnchor is the horizontal anchor of a node inside its parent.
type XAnchor int

const (
	XAnchorNone XAnchor = iota
	XAnchorLeft
	XAnchorCenter
	XAnchorRight
	XAnchorStretch
)

// YAnchor is the vertical anchor of a node inside its parent.
type YAnchor int

const (
	YAnchorNone YAnchor = iota
	YAnchorBottom
	YAnchorMiddle
	YAnchorTop
	YAnchorStretch
)

// WidgetType selects the content an image node becomes in the scene.
type WidgetType int

const (
	WidgetNone WidgetType = iota
	WidgetImage
	WidgetText
	// WidgetEmptyGraphic reserves a scene slot without raster content.
	WidgetEmptyGraphic
)

// ParseXAnchor maps an overlay value to an XAnchor. Unknown values are
// XAnchorNone.
func ParseXAnchor(s string) XAnchor {
	switch s {
	case "left":
		return XAnchorLeft
	case "center":
		return XAnchorCenter
	case "right":
		return XAnchorRight
	case "stretch":
		return XAnchorStretch
	default:
		return XAnchorNone
	}
}

// ParseYAnchor maps an overlay value to a YAnchor. Unknown values are
// YAnchorNone.
func ParseYAnchor(s string) YAnchor {
	switch s {
	case "top":
		return YAnchorTop
	case "middle":
		return YAnchorMiddle
	case "bottom":
		return YAnchorBottom
	case "stretch":
		return YAnchorStretch
	default:
		return YAnchorNone
	}
}

// ParseWidgetType maps an overlay value to a WidgetType. Unknown values
// are WidgetNone.
func ParseWidgetType(s string) WidgetType {
	switch s {
	case "image":
		return WidgetImage
	case "text":
		return WidgetText
	case "empty":
		return WidgetEmptyGraphic
	default:
		return WidgetNone
	}
}

var (
	xAnchorNames    = [...]string{"none", "left", "center", "right", "stretch"}
	yAnchorNames    = [...]string{"none", "bottom", "middle", "top", "stretch"}
	widgetTypeNames = [...]string{"none", "image", "text", "empty"}
)

func (a XAnchor) String() string {
	if a < 0 || int(a) >= len(xAnchorNames) {
		return "unknown"
	}
	return xAnchorNames[a]
}

func (a YAnchor) String() string {
	if a < 0 || int(a) >= len(yAnchorNames) {
		return "unknown"
	}
	return yAnchorNames[a]
}

func (w WidgetType) String() string {
	if w < 0 || int(w) >= len(widgetTypeNames) {
		return "unknown"
	}
	return widgetTypeNames[w]
}
