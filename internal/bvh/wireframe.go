package bvh

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/scene"
)

// WireVertex is one endpoint of a wireframe edge: a position and a color
// whose red channel encodes the enclosing node's depth, per spec.md
// section 4.2.
type WireVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// inflateFactor expands each box by 1% about its minimum corner to avoid
// coplanar z-fighting with the geometry it contains, per spec.md section
// 4.2.
const inflateFactor = 1.01

// boxEdgeOffsets enumerates the 12 edges of a unit box as pairs of corner
// indices into the 8-corner enumeration ordered by the bit pattern
// (x,y,z).
var boxEdgeOffsets = [12][2]int{
	{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
	{2, 6}, {3, 7}, {4, 5}, {4, 6}, {5, 7}, {6, 7},
}

// Wireframe enumerates, depth-first, every node up to and including
// maxDepth and returns the 24 endpoints (12 edges * 2) of each visited
// box's edges. A maxDepth at or beyond the tree's actual depth yields the
// full tree, per the UI contract in spec.md section 6.
func (t *Tree) Wireframe(maxDepth uint32) []WireVertex {
	if t.Root == nil {
		return nil
	}
	stats := t.ComputeStats()
	denom := float32(stats.MaxDepth)
	if denom == 0 {
		denom = 1
	}

	var verts []WireVertex
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.Depth > maxDepth {
			return
		}
		red := float32(n.Depth) / denom
		color := mgl32.Vec3{red, 1 - red, 0.2}
		verts = append(verts, boxEdges(n.Box, color)...)
		if !n.IsLeaf() {
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(t.Root)
	return verts
}

func boxEdges(box scene.BoundingBox, color mgl32.Vec3) []WireVertex {
	min := box.Min
	max := box.Max
	inflatedMax := min.Add(max.Sub(min).Mul(inflateFactor))

	corners := [8]mgl32.Vec3{}
	for i := 0; i < 8; i++ {
		x := min.X()
		if i&1 != 0 {
			x = inflatedMax.X()
		}
		y := min.Y()
		if i&2 != 0 {
			y = inflatedMax.Y()
		}
		z := min.Z()
		if i&4 != 0 {
			z = inflatedMax.Z()
		}
		corners[i] = mgl32.Vec3{x, y, z}
	}

	verts := make([]WireVertex, 0, 24)
	for _, e := range boxEdgeOffsets {
		verts = append(verts, WireVertex{Position: corners[e[0]], Color: color})
		verts = append(verts, WireVertex{Position: corners[e[1]], Color: color})
	}
	return verts
}
