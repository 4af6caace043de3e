package bvh

import (
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/scene"
)

// FlatNode is the GPU-facing node layout: Min/Max bounds, two
// discriminated slots (LeftChild/RightChild for internals,
// TriangleStart/TriangleCount for leaves), and a leaf flag. Root is
// always at index 0. See spec.md section 3 ("Flat BVH").
type FlatNode struct {
	Min, Max     [3]float32
	Slot0, Slot1 uint32
	IsLeaf       bool
}

// Flat is the flattened BVH: the node array plus the triangle index array
// leaves slice into contiguously.
type Flat struct {
	Nodes           []FlatNode
	TriangleIndices []uint32
}

// Flatten performs the depth-first traversal of spec.md section 4.2:
// each node is assigned an index in the output array as it is visited;
// leaves append their triangle indices contiguously and record
// (start, count); internal nodes record their children's indices after
// both subtrees have been flattened.
func (t *Tree) Flatten() Flat {
	var f Flat
	if t.Root == nil {
		return f
	}
	flattenNode(t.Root, &f)
	return f
}

func flattenNode(n *Node, f *Flat) uint32 {
	idx := uint32(len(f.Nodes))
	f.Nodes = append(f.Nodes, FlatNode{}) // reserve the slot at idx

	if n.IsLeaf() {
		start := uint32(len(f.TriangleIndices))
		f.TriangleIndices = append(f.TriangleIndices, n.TriangleIndices...)
		f.Nodes[idx] = FlatNode{
			Min:    toArr(n.Box.Min),
			Max:    toArr(n.Box.Max),
			Slot0:  start,
			Slot1:  uint32(len(n.TriangleIndices)),
			IsLeaf: true,
		}
		return idx
	}

	leftIdx := flattenNode(n.Left, f)
	rightIdx := flattenNode(n.Right, f)
	f.Nodes[idx] = FlatNode{
		Min:    toArr(n.Box.Min),
		Max:    toArr(n.Box.Max),
		Slot0:  leftIdx,
		Slot1:  rightIdx,
		IsLeaf: false,
	}
	return idx
}

func toArr(v mgl32.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

// Unflatten rebuilds a recursive Node tree from a Flat array by following
// child indices and leaf slices, starting at root index 0. It exists
// purely to check the flattening round-trip property of spec.md section 8
// and is not used on the hot path.
func (f Flat) Unflatten() *Node {
	if len(f.Nodes) == 0 {
		return nil
	}
	return f.unflattenAt(0, 0)
}

func (f Flat) unflattenAt(idx uint32, depth uint32) *Node {
	fn := f.Nodes[idx]
	box := boxFromArr(fn.Min, fn.Max)
	if fn.IsLeaf {
		indices := append([]uint32(nil), f.TriangleIndices[fn.Slot0:fn.Slot0+fn.Slot1]...)
		return &Node{Box: box, TriangleIndices: indices, Depth: depth}
	}
	return &Node{
		Box:   box,
		Left:  f.unflattenAt(fn.Slot0, depth+1),
		Right: f.unflattenAt(fn.Slot1, depth+1),
		Depth: depth,
	}
}

func boxFromArr(min, max [3]float32) scene.BoundingBox {
	return scene.BoundingBox{Min: mgl32.Vec3{min[0], min[1], min[2]}, Max: mgl32.Vec3{max[0], max[1], max[2]}}
}
