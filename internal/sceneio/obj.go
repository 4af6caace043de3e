package sceneio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a flat vertex/face table parsed from an OBJ subset: "v " position
// lines, "vn " normal lines (parsed but unused, per spec.md section 6), and
// "f " face lines with "v/vt/vn" tokens (vt may be empty). Faces with more
// than three vertices are fan-triangulated from the first vertex.
type Mesh struct {
	Positions []mgl32.Vec3
	Faces     [][]int // each face is >=3 indices into Positions
}

// FaceWarning describes a face skipped because it referenced an invalid
// vertex index; the load continues, matching spec.md section 4.1's "warn,
// skip face" failure mode.
type FaceWarning struct {
	Line  int
	Token string
}

func (w FaceWarning) String() string {
	return fmt.Sprintf("obj: line %d: invalid face token %q, face skipped", w.Line, w.Token)
}

// ParseOBJ parses an OBJ-subset mesh from raw bytes, returning any
// per-face warnings alongside the parsed mesh (never an error on its own —
// a mesh with zero valid faces is still a valid, if empty, mesh).
func ParseOBJ(data []byte) (Mesh, []FaceWarning) {
	var mesh Mesh
	var warnings []FaceWarning

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "v "):
			v, ok := parseVec3(line[2:])
			if ok {
				mesh.Positions = append(mesh.Positions, v)
			}
		case strings.HasPrefix(line, "vn "):
			// normals are parsed-but-unused per spec.md section 6.
		case strings.HasPrefix(line, "f "):
			face, warn, ok := parseFace(line[2:], len(mesh.Positions), lineNo)
			if !ok {
				warnings = append(warnings, warn)
				continue
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	return mesh, warnings
}

func parseVec3(s string) (mgl32.Vec3, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return mgl32.Vec3{}, false
	}
	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, false
		}
		v[i] = float32(f)
	}
	return v, true
}

// parseFace parses "v/vt/vn v/vt/vn ..." tokens, keeping only the vertex
// index of each token (vt/vn are ignored here; vn is re-derived by the
// triangle's own winding). Indices are 1-based and may be negative
// (relative to the end of the position list so far), per the OBJ format.
func parseFace(s string, posCount int, lineNo int) ([]int, FaceWarning, bool) {
	tokens := strings.Fields(s)
	if len(tokens) < 3 {
		return nil, FaceWarning{Line: lineNo, Token: s}, false
	}
	indices := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.Split(tok, "/")
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, FaceWarning{Line: lineNo, Token: tok}, false
		}
		if idx < 0 {
			idx = posCount + idx + 1
		}
		if idx < 1 || idx > posCount {
			return nil, FaceWarning{Line: lineNo, Token: tok}, false
		}
		indices = append(indices, idx-1)
	}
	return indices, FaceWarning{}, true
}

// Triangulate fan-triangulates every face (>=3 verts) from its first
// vertex and returns the resulting (v0,v1,v2) index triples.
func (m Mesh) Triangulate() [][3]int {
	var tris [][3]int
	for _, face := range m.Faces {
		for i := 1; i+1 < len(face); i++ {
			tris = append(tris, [3]int{face[0], face[i], face[i+1]})
		}
	}
	return tris
}
