// Package layout implements the recursive geometry engine behind panelize
// figures.
//
// A figure is described by a tree of positioned rectangles. The leaves are
// Regions, each referencing one panel image; interior nodes are Trees that
// group an ordered sequence of children under one bounding box. Two nodes are
// combined by stacking: StackRight places the second node against the right
// edge of the first and rescales it so the vertical extents match, StackBelow
// does the same against the bottom edge with the horizontal extents. Reducing
// a list of nodes through repeated stacking yields rows and columns of
// arbitrary nesting depth.
//
// Coordinates are float64 with the y axis growing downward, matching image
// space. Geometry is mutated in place by the shift, rescale, and stack
// operations; tree topology never changes after construction except that a
// stacked operand is absorbed into the receiver. An absorbed node must not be
// reused in another composition.
//
// The engine is pure and single threaded. Rasterization of a finished tree
// lives in the figure package.
package layout
