package bvh

import (
	"sort"

	"pathtracer/internal/scene"
)

const (
	// CT and CI are the SAH traversal/intersection cost constants from
	// spec.md section 4.2.
	CT = 1.0
	CI = 1.0
)

// Tree is a built BVH over a fixed triangle list.
type Tree struct {
	Root      *Node
	Triangles []scene.Triangle
}

// Build constructs a SAH BVH over tris. The returned Tree retains the
// triangle slice (by reference semantics of the caller's slice) — leaves
// reference triangles by index into it, never by copy.
func Build(tris []scene.Triangle) *Tree {
	indices := make([]uint32, len(tris))
	for i := range indices {
		indices[i] = uint32(i)
	}
	b := &builder{tris: tris}
	root := b.build(indices, 0)
	return &Tree{Root: root, Triangles: tris}
}

type builder struct {
	tris []scene.Triangle
}

func (b *builder) boxOf(indices []uint32) scene.BoundingBox {
	if len(indices) == 0 {
		return scene.EmptyBox()
	}
	box := scene.TriangleBounds(b.tris[indices[0]])
	for _, i := range indices[1:] {
		box = box.Union(scene.TriangleBounds(b.tris[i]))
	}
	return box
}

func (b *builder) build(indices []uint32, depth uint32) *Node {
	box := b.boxOf(indices)

	if len(indices) <= 1 {
		return &Node{Box: box, TriangleIndices: indices, Depth: depth}
	}

	axis, splitPos, cost, ok := b.bestSplit(indices, box)
	leafCost := CI * float32(len(indices))
	if !ok || cost >= leafCost {
		return &Node{Box: box, TriangleIndices: indices, Depth: depth}
	}

	left, right := b.partition(indices, axis, splitPos)
	if len(left) == 0 || len(right) == 0 {
		left, right = b.medianSplit(indices, axis)
	}

	node := &Node{Box: box, Depth: depth}
	node.Left = b.build(left, depth+1)
	node.Right = b.build(right, depth+1)
	return node
}

// bestSplit evaluates, for each axis, every split position in the
// centroid-sorted order and returns the (axis, split position along that
// axis, cost) triple minimizing the SAH cost, per spec.md section 4.2
// steps 2-3.
func (b *builder) bestSplit(indices []uint32, box scene.BoundingBox) (axis int, splitPos float32, bestCost float32, ok bool) {
	boxArea := box.SurfaceArea()
	if boxArea == 0 {
		return 0, 0, 0, false
	}

	found := false

	for a := 0; a < 3; a++ {
		sorted := append([]uint32(nil), indices...)
		sort.Slice(sorted, func(i, j int) bool {
			return centroidOn(b.tris[sorted[i]], a) < centroidOn(b.tris[sorted[j]], a)
		})

		n := len(sorted)
		leftBoxes := make([]scene.BoundingBox, n+1)
		rightBoxes := make([]scene.BoundingBox, n+1)
		leftBoxes[0] = scene.EmptyBox()
		rightBoxes[n] = scene.EmptyBox()
		for i := 0; i < n; i++ {
			leftBoxes[i+1] = extendBox(leftBoxes[i], b.tris[sorted[i]], i == 0)
		}
		for i := n - 1; i >= 0; i-- {
			rightBoxes[i] = extendBox(rightBoxes[i+1], b.tris[sorted[i]], i == n-1)
		}

		for i := 1; i < n; i++ {
			costL := leftBoxes[i].SurfaceArea() / boxArea * float32(i)
			costR := rightBoxes[i].SurfaceArea() / boxArea * float32(n-i)
			cost := CT + CI*(costL+costR)
			if !found || cost < bestCost {
				found = true
				bestCost = cost
				axis = a
				c0 := centroidOn(b.tris[sorted[i-1]], a)
				c1 := centroidOn(b.tris[sorted[i]], a)
				splitPos = (c0 + c1) * 0.5
			}
		}
	}

	return axis, splitPos, bestCost, found
}

func extendBox(acc scene.BoundingBox, t scene.Triangle, first bool) scene.BoundingBox {
	tb := scene.TriangleBounds(t)
	if first {
		return tb
	}
	return acc.Union(tb)
}

func centroidOn(t scene.Triangle, axis int) float32 {
	c := t.Centroid()
	switch axis {
	case 0:
		return c.X()
	case 1:
		return c.Y()
	default:
		return c.Z()
	}
}

// partition splits indices by comparing each triangle's centroid on axis
// to splitPos.
func (b *builder) partition(indices []uint32, axis int, splitPos float32) (left, right []uint32) {
	for _, i := range indices {
		if centroidOn(b.tris[i], axis) < splitPos {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// medianSplit is the degenerate-partition fallback from spec.md section
// 4.2 step 4: sort on the chosen axis and split at the median index.
func (b *builder) medianSplit(indices []uint32, axis int) (left, right []uint32) {
	sorted := append([]uint32(nil), indices...)
	sort.Slice(sorted, func(i, j int) bool {
		return centroidOn(b.tris[sorted[i]], axis) < centroidOn(b.tris[sorted[j]], axis)
	})
	mid := len(sorted) / 2
	return append([]uint32(nil), sorted[:mid]...), append([]uint32(nil), sorted[mid:]...)
}

// ComputeStats walks the tree and returns its summary statistics.
func (t *Tree) ComputeStats() Stats {
	var s Stats
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		s.TotalNodes++
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		if n.IsLeaf() {
			s.LeafNodes++
			s.TotalTriangles += len(n.TriangleIndices)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root)
	return s
}
