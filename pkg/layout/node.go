package layout

import "errors"

// Sentinel errors for layout construction and composition.
var (
	// ErrEmptyTree is returned when a tree is constructed with no children.
	ErrEmptyTree = errors.New("layout: tree must contain at least one node")

	// ErrInvalidShape is returned when a region is created with a
	// non-positive width or height.
	ErrInvalidShape = errors.New("layout: region width and height must be positive")

	// ErrDegenerateExtent is returned when a stacking operand has zero
	// extent along the axis used for the scale ratio.
	ErrDegenerateExtent = errors.New("layout: stacking operand has zero extent")
)

// Node is one element of a figure layout: either a single *Region or a *Tree
// of nested nodes.
type Node interface {
	// XMin, XMax, YMin and YMax describe the node's bounding box, the
	// union of all transitively contained regions.
	XMin() float64
	XMax() float64
	YMin() float64
	YMax() float64

	// ShiftX and ShiftY translate every contained region.
	ShiftX(dx float64)
	ShiftY(dy float64)

	// Rescale multiplies every contained region's size by f, keeping the
	// node's own top-left corner fixed. For trees the transform is applied
	// per nesting level about each subtree's local minimum, so relative
	// internal layout is preserved at every depth.
	Rescale(f float64)

	// Walk visits every contained region in depth-first child order,
	// stopping at the first error.
	Walk(fn func(*Region) error) error
}

// WidthRange returns the horizontal extent of the node's bounding box.
func WidthRange(n Node) float64 { return n.XMax() - n.XMin() }

// HeightRange returns the vertical extent of the node's bounding box.
func HeightRange(n Node) float64 { return n.YMax() - n.YMin() }

// Normalize shifts the node so its bounding box starts at the origin.
func Normalize(n Node) {
	n.ShiftX(-n.XMin())
	n.ShiftY(-n.YMin())
}
