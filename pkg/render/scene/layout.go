package scene

import "github.com/matzehuels/psdui/pkg/uitree"

// Anchors maps a node's anchor settings to normalized anchor points.
// Left and Bottom map to 0, Center and Middle to 0.5, Right and Top to 1.
// Stretch spans 0 to 1. None pins both points to the parent center.
func Anchors(x uitree.XAnchor, y uitree.YAnchor) (anchorMin, anchorMax uitree.Vec2) {
	anchorMin.X, anchorMax.X = xAnchor(x)
	anchorMin.Y, anchorMax.Y = yAnchor(y)
	return anchorMin, anchorMax
}

func xAnchor(a uitree.XAnchor) (lo, hi float64) {
	switch a {
	case uitree.XAnchorLeft:
		return 0, 0
	case uitree.XAnchorCenter:
		return 0.5, 0.5
	case uitree.XAnchorRight:
		return 1, 1
	case uitree.XAnchorStretch:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

func yAnchor(a uitree.YAnchor) (lo, hi float64) {
	switch a {
	case uitree.YAnchorBottom:
		return 0, 0
	case uitree.YAnchorMiddle:
		return 0.5, 0.5
	case uitree.YAnchorTop:
		return 1, 1
	case uitree.YAnchorStretch:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Placement is an anchor-relative position, the form a container stores.
type Placement struct {
	Pivot            uitree.Vec2 `json:"pivot"`
	AnchorMin        uitree.Vec2 `json:"anchor_min"`
	AnchorMax        uitree.Vec2 `json:"anchor_max"`
	AnchoredPosition uitree.Vec2 `json:"anchored_position"`
	SizeDelta        uitree.Vec2 `json:"size_delta"`
}

// Place computes the anchor-relative placement of rect inside parent.
//
// The anchor rect spans the anchor points inside parent. The anchored
// position is the pivot point of rect minus the pivot point of the anchor
// rect, and the size delta is the size of rect minus the anchor rect size.
func Place(rect, parent uitree.Rect, anchorMin, anchorMax, pivot uitree.Vec2) Placement {
	anchorMinPos := uitree.Lerp(parent.Min(), parent.Max(), anchorMin)
	anchorMaxPos := uitree.Lerp(parent.Min(), parent.Max(), anchorMax)
	anchorSize := anchorMaxPos.Sub(anchorMinPos)
	anchorRef := uitree.Lerp(anchorMinPos, anchorMaxPos, pivot)
	pivotPos := uitree.Lerp(rect.Min(), rect.Max(), pivot)

	return Placement{
		Pivot:            pivot,
		AnchorMin:        anchorMin,
		AnchorMax:        anchorMax,
		AnchoredPosition: pivotPos.Sub(anchorRef),
		SizeDelta:        rect.Size().Sub(anchorSize),
	}
}

// Resolve is the inverse of [Place]: it returns the absolute rect of the
// placement inside parent.
func (p Placement) Resolve(parent uitree.Rect) uitree.Rect {
	anchorMinPos := uitree.Lerp(parent.Min(), parent.Max(), p.AnchorMin)
	anchorMaxPos := uitree.Lerp(parent.Min(), parent.Max(), p.AnchorMax)
	size := p.SizeDelta.Add(anchorMaxPos.Sub(anchorMinPos))
	pivotPos := uitree.Lerp(anchorMinPos, anchorMaxPos, p.Pivot).Add(p.AnchoredPosition)

	origin := uitree.Vec2{X: pivotPos.X - p.Pivot.X*size.X, Y: pivotPos.Y - p.Pivot.Y*size.Y}
	return uitree.NewRect(origin.X, origin.Y, size.X, size.Y)
}

// stretched is the placement of a container filling its parent.
func stretched() Placement {
	return Placement{
		Pivot:     uitree.Vec2{X: 0.5, Y: 0.5},
		AnchorMin: uitree.Vec2{X: 0, Y: 0},
		AnchorMax: uitree.Vec2{X: 1, Y: 1},
	}
}
