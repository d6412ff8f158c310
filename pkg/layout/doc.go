// Package layout converts a tree-shaped graph into conflict-free 2D
// geometry.
//
// Given a structure graph and two step sizes, [Compute] assigns every node
// a center position and bounding box such that sibling subtrees never
// overlap and every parent is centered over the full span of its children.
// The result is renderer-agnostic: pkg/render/structure turns it into SVG,
// but any backend can consume the geometry table.
//
// The algorithm is two tree traversals. The first walks post-order and
// computes widths bottom-up: a leaf occupies one stepX, an internal node
// the sum of its children. The second walks pre-order and assigns centers
// top-down, packing siblings left-to-right inside the parent's span. Depth
// alone determines the y coordinate, so all nodes of one tree level share
// a row.
//
// Inputs that violate the rooted-tree invariant are rejected with
// [ErrNotATree] before any geometry is computed.
package layout
