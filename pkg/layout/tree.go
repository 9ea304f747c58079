package layout

import (
	"fmt"
	"strings"
)

// Tree is an ordered composite of regions and nested trees sharing one
// bounding box. Child order is insertion order and determines rasterization
// order; no layout operation ever reorders children.
type Tree struct {
	children []Node
}

// NewTree creates a tree over the given children. At least one child is
// required.
func NewTree(children ...Node) (*Tree, error) {
	if len(children) == 0 {
		return nil, ErrEmptyTree
	}
	return &Tree{children: children}, nil
}

// Children returns the tree's direct children in layout order. The returned
// slice is the tree's own backing store and must not be modified.
func (t *Tree) Children() []Node { return t.children }

// Len returns the number of direct children.
func (t *Tree) Len() int { return len(t.children) }

// XMin returns the smallest x coordinate over all contained regions.
func (t *Tree) XMin() float64 {
	min := t.children[0].XMin()
	for _, c := range t.children[1:] {
		if v := c.XMin(); v < min {
			min = v
		}
	}
	return min
}

// XMax returns the largest x coordinate over all contained regions.
func (t *Tree) XMax() float64 {
	max := t.children[0].XMax()
	for _, c := range t.children[1:] {
		if v := c.XMax(); v > max {
			max = v
		}
	}
	return max
}

// YMin returns the smallest y coordinate over all contained regions.
func (t *Tree) YMin() float64 {
	min := t.children[0].YMin()
	for _, c := range t.children[1:] {
		if v := c.YMin(); v < min {
			min = v
		}
	}
	return min
}

// YMax returns the largest y coordinate over all contained regions.
func (t *Tree) YMax() float64 {
	max := t.children[0].YMax()
	for _, c := range t.children[1:] {
		if v := c.YMax(); v > max {
			max = v
		}
	}
	return max
}

// ShiftX moves every contained region right by dx.
func (t *Tree) ShiftX(dx float64) {
	for _, c := range t.children {
		c.ShiftX(dx)
	}
}

// ShiftY moves every contained region down by dy.
func (t *Tree) ShiftY(dy float64) {
	for _, c := range t.children {
		c.ShiftY(dy)
	}
}

// Rescale grows or shrinks the whole tree uniformly by f, keeping the tree's
// top-left corner fixed. Each child is repositioned so its offset from the
// tree's minimum scales by f, then rescaled about its own minimum. Applying
// the transform per nesting level rather than as one global affine keeps the
// rule self-similar: every subtree is rescaled about its own corner.
func (t *Tree) Rescale(f float64) {
	xMin, yMin := t.XMin(), t.YMin()
	for _, c := range t.children {
		cx, cy := c.XMin(), c.YMin()
		c.ShiftX(xMin + (cx-xMin)*f - cx)
		c.ShiftY(yMin + (cy-yMin)*f - cy)
		c.Rescale(f)
	}
}

// Walk visits every contained region in depth-first child order.
func (t *Tree) Walk(fn func(*Region) error) error {
	for _, c := range t.children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// absorb appends the other node's content at the tail of the child list. A
// tree operand is spliced so its children join this tree directly, which
// preserves depth-first leaf order; a region operand is appended as-is.
func (t *Tree) absorb(other Node) {
	if o, ok := other.(*Tree); ok {
		t.children = append(t.children, o.children...)
		return
	}
	t.children = append(t.children, other)
}

func (t *Tree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tree[%d children, %gx%g at (%g, %g)]",
		len(t.children), WidthRange(t), HeightRange(t), t.XMin(), t.YMin())
	return b.String()
}
