package sceneio

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// mapFetcher implements Fetcher over an in-memory set of named assets, so
// Loader can be exercised without touching the filesystem.
type mapFetcher map[string][]byte

func (m mapFetcher) Fetch(p string) ([]byte, error) {
	data, ok := m[p]
	if !ok {
		return nil, fmt.Errorf("no such asset: %s", p)
	}
	return data, nil
}

const minimalTriangleManifest = `{
	"camera": {"position":[0,0,5],"rotation":[0,0,0],"fov":60,"nearPlane":0.1,"farPlane":100},
	"spheres": [{"center":[1,2,3],"radius":0.5,"color":[1,0,0],"emissionColor":[0,0,0],"emissionStrength":0,"smoothness":0.2,"specularProbability":0.1}],
	"triangles": [{"v0":[0,0,0],"v1":[1,0,0],"v2":[0,1,0],"color":[0,1,0],"emissionColor":[0,0,0],"emissionStrength":0,"smoothness":0,"specularProbability":0}],
	"models": []
}`

func TestLoadParsesCameraSpheresAndTriangles(t *testing.T) {
	l := &Loader{Fetcher: mapFetcher{"scene.json": []byte(minimalTriangleManifest)}}
	sc, err := l.Load("scene.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if sc.Camera.Position != (mgl32.Vec3{0, 0, 5}) {
		t.Fatalf("Camera.Position = %v, want (0,0,5)", sc.Camera.Position)
	}
	if sc.Camera.FOV != 60 {
		t.Fatalf("Camera.FOV = %v, want 60", sc.Camera.FOV)
	}
	if len(sc.Spheres) != 1 || sc.Spheres[0].Radius != 0.5 {
		t.Fatalf("Spheres = %+v, want one radius-0.5 sphere", sc.Spheres)
	}
	if len(sc.Triangles) != 1 || sc.Triangles[0].V1 != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("Triangles = %+v, want one triangle with v1=(1,0,0)", sc.Triangles)
	}
}

func TestLoadRejectsUnknownManifest(t *testing.T) {
	l := &Loader{Fetcher: mapFetcher{}}
	if _, err := l.Load("missing.json"); err == nil {
		t.Fatalf("expected an error fetching a missing manifest")
	}
}

func TestLoadIdentityModelTransformIsBitIdentical(t *testing.T) {
	objData := []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	manifest := `{
		"camera": {"position":[0,0,0],"rotation":[0,0,0],"fov":60,"nearPlane":0.1,"farPlane":100},
		"spheres": [],
		"triangles": [],
		"models": [{"path":"mesh.obj","position":[0,0,0],"rotation":[0,0,0],"scale":[1,1,1],"color":[1,1,1],"emissionColor":[0,0,0],"emissionStrength":0,"smoothness":0,"specularProbability":0}]
	}`
	l := &Loader{Fetcher: mapFetcher{
		"scene.json": []byte(manifest),
		"mesh.obj":   objData,
	}}

	sc, err := l.Load("scene.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Triangles) != 1 {
		t.Fatalf("len(Triangles) = %d, want 1", len(sc.Triangles))
	}
	tri := sc.Triangles[0]
	want := [3]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	got := [3]mgl32.Vec3{tri.V0, tri.V1, tri.V2}
	if got != want {
		t.Fatalf("world-space triangle = %v, want bit-identical %v to the parsed mesh", got, want)
	}
}

func TestLoadModelsPreservesManifestOrderAcrossGoroutines(t *testing.T) {
	manifest := `{
		"camera": {"position":[0,0,0],"rotation":[0,0,0],"fov":60,"nearPlane":0.1,"farPlane":100},
		"spheres": [],
		"triangles": [],
		"models": [
			{"path":"a.obj","position":[10,0,0],"rotation":[0,0,0],"scale":[1,1,1]},
			{"path":"b.obj","position":[20,0,0],"rotation":[0,0,0],"scale":[1,1,1]},
			{"path":"c.obj","position":[30,0,0],"rotation":[0,0,0],"scale":[1,1,1]}
		]
	}`
	objData := []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	l := &Loader{Fetcher: mapFetcher{
		"scene.json": []byte(manifest),
		"a.obj":      objData,
		"b.obj":      objData,
		"c.obj":      objData,
	}}

	sc, err := l.Load("scene.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Triangles) != 3 {
		t.Fatalf("len(Triangles) = %d, want 3", len(sc.Triangles))
	}
	wantX := []float32{10, 20, 30}
	for i, x := range wantX {
		if got := sc.Triangles[i].V0.X(); got != x {
			t.Fatalf("Triangles[%d].V0.X() = %v, want %v (manifest order must be preserved)", i, got, x)
		}
	}
}

func TestLoadModelSkipsFacesWithInvalidIndicesAndWarns(t *testing.T) {
	manifest := `{
		"camera": {"position":[0,0,0],"rotation":[0,0,0],"fov":60,"nearPlane":0.1,"farPlane":100},
		"spheres": [],
		"triangles": [],
		"models": [{"path":"bad.obj","position":[0,0,0],"rotation":[0,0,0],"scale":[1,1,1]}]
	}`
	objData := []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1 2 9\n")

	var warnings []string
	l := &Loader{
		Fetcher: mapFetcher{"scene.json": []byte(manifest), "bad.obj": objData},
		Warnf:   func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) },
	}

	sc, err := l.Load("scene.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Triangles) != 1 {
		t.Fatalf("len(Triangles) = %d, want 1 (the invalid face should be skipped, not fatal)", len(sc.Triangles))
	}
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
}

func TestLoadModelAppliesScaleAndTranslation(t *testing.T) {
	manifest := `{
		"camera": {"position":[0,0,0],"rotation":[0,0,0],"fov":60,"nearPlane":0.1,"farPlane":100},
		"spheres": [],
		"triangles": [],
		"models": [{"path":"mesh.obj","position":[5,0,0],"rotation":[0,0,0],"scale":[2,2,2]}]
	}`
	objData := []byte("v 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\n")
	l := &Loader{Fetcher: mapFetcher{"scene.json": []byte(manifest), "mesh.obj": objData}}

	sc, err := l.Load("scene.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Triangles) != 1 {
		t.Fatalf("len(Triangles) = %d, want 1", len(sc.Triangles))
	}
	want := mgl32.Vec3{7, 0, 0} // scale 2 then translate (5,0,0): (1,0,0)*2 + (5,0,0)
	if got := sc.Triangles[0].V0; got != want {
		t.Fatalf("V0 = %v, want %v", got, want)
	}
}
