package layout

import "fmt"

// StackRight appends b to the right of a. The operand is shifted so its left
// edge meets a's right edge, then rescaled so its vertical extent matches a's
// exactly. The offset is computed before the rescale, on unscaled
// coordinates. Both nodes are consumed: the returned tree owns them and
// neither may be used in another composition.
func StackRight(a, b Node) (*Tree, error) {
	if HeightRange(b) == 0 {
		return nil, fmt.Errorf("%w: height range of %v is zero", ErrDegenerateExtent, b)
	}
	xOffset := a.XMax() - b.XMin()
	scale := HeightRange(a) / HeightRange(b)

	b.ShiftX(xOffset)
	b.Rescale(scale)
	return join(a, b), nil
}

// StackBelow appends b below a, matching horizontal extents: the x/y mirror
// of StackRight.
func StackBelow(a, b Node) (*Tree, error) {
	if WidthRange(b) == 0 {
		return nil, fmt.Errorf("%w: width range of %v is zero", ErrDegenerateExtent, b)
	}
	yOffset := a.YMax() - b.YMin()
	scale := WidthRange(a) / WidthRange(b)

	b.ShiftY(yOffset)
	b.Rescale(scale)
	return join(a, b), nil
}

// MergeRow reduces the nodes left to right with StackRight, producing an
// n-way row. A single node is wrapped into a tree unchanged.
func MergeRow(nodes []Node) (*Tree, error) {
	return merge(nodes, StackRight)
}

// MergeCol reduces the nodes top to bottom with StackBelow, producing an
// n-way column.
func MergeCol(nodes []Node) (*Tree, error) {
	return merge(nodes, StackBelow)
}

func merge(nodes []Node, stack func(a, b Node) (*Tree, error)) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyTree
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		t, err := stack(acc, n)
		if err != nil {
			return nil, err
		}
		acc = t
	}
	if t, ok := acc.(*Tree); ok {
		return t, nil
	}
	return NewTree(acc)
}

// join merges b into a. A tree receiver absorbs the operand in place; a
// region receiver is promoted to a new two-element tree first.
func join(a, b Node) *Tree {
	t, ok := a.(*Tree)
	if !ok {
		t = &Tree{children: []Node{a}}
	}
	t.absorb(b)
	return t
}
