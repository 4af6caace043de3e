package sceneio

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"pathtracer/internal/scene"
)

// Fetcher reads a named asset's raw bytes. It stands in for spec.md
// section 1's "asset I/O layer" external collaborator, which is out of
// scope for the core except for this interface.
type Fetcher interface {
	Fetch(path string) ([]byte, error)
}

// FSFetcher fetches assets from an fs.FS, normally the OS filesystem via
// os.DirFS.
type FSFetcher struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FSFetcher) Fetch(p string) ([]byte, error) {
	return fs.ReadFile(f.FS, p)
}

// Loader parses scene manifests and their referenced meshes into
// scene.Scene values.
type Loader struct {
	Fetcher Fetcher
	// Warnf receives non-fatal diagnostics (invalid face indices, etc.)
	// rather than failing the load; defaults to a no-op if nil.
	Warnf func(format string, args ...any)
}

// NewLoader returns a Loader reading from the OS filesystem rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Fetcher: FSFetcher{FS: os.DirFS(dir)}}
}

func (l *Loader) warnf(format string, args ...any) {
	if l.Warnf != nil {
		l.Warnf(format, args...)
	}
}

// Load parses the manifest at manifestPath and returns the resulting
// Scene. Model meshes are fetched and parsed concurrently (one goroutine
// per model — the system's one asynchronous boundary per spec.md section
// 5) but their triangles are appended to the scene in manifest order.
func (l *Loader) Load(manifestPath string) (*scene.Scene, error) {
	raw, err := l.Fetcher.Fetch(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("sceneio: fetch manifest %s: %w", manifestPath, err)
	}

	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("sceneio: parse manifest %s: %w", manifestPath, err)
	}

	sc := &scene.Scene{
		Camera: scene.Camera{
			Position:  vec3(m.Camera.Position),
			Rotation:  vec3(m.Camera.Rotation),
			FOV:       m.Camera.FOV,
			NearPlane: m.Camera.NearPlane,
			FarPlane:  m.Camera.FarPlane,
		},
	}

	for _, s := range m.Spheres {
		sc.Spheres = append(sc.Spheres, scene.Sphere{
			Center:   vec3(s.Center),
			Radius:   s.Radius,
			Material: materialOf(s.materialJSON),
		})
	}
	for _, t := range m.Triangles {
		sc.Triangles = append(sc.Triangles, scene.Triangle{
			V0:       vec3(t.V0),
			V1:       vec3(t.V1),
			V2:       vec3(t.V2),
			Material: materialOf(t.materialJSON),
		})
	}

	modelTris, err := l.loadModels(path.Dir(manifestPath), m.Models)
	if err != nil {
		return nil, err
	}
	for _, tris := range modelTris {
		sc.Triangles = append(sc.Triangles, tris...)
	}

	return sc, nil
}

// loadModels fetches and triangulates every model concurrently, returning
// each model's world-space triangles indexed by the model's position in
// the manifest so callers can append them in manifest order regardless of
// completion order.
func (l *Loader) loadModels(base string, models []modelJSON) ([][]scene.Triangle, error) {
	results := make([][]scene.Triangle, len(models))

	g := new(errgroup.Group)
	for i, mdl := range models {
		i, mdl := i, mdl
		g.Go(func() error {
			tris, warnings, err := l.loadModel(base, mdl)
			for _, w := range warnings {
				l.warnf("%s: %s", mdl.Path, w.String())
			}
			if err != nil {
				return fmt.Errorf("sceneio: model %s: %w", mdl.Path, err)
			}
			results[i] = tris
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) loadModel(base string, mdl modelJSON) ([]scene.Triangle, []FaceWarning, error) {
	p := mdl.Path
	if !path.IsAbs(p) {
		p = path.Join(base, p)
	}
	raw, err := l.Fetcher.Fetch(p)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch mesh %s: %w", p, err)
	}

	mesh, warnings := ParseOBJ(raw)
	mat := materialOf(mdl.materialJSON)
	model := ModelMatrix(vec3(mdl.Position), vec3(mdl.Rotation), vec3(mdl.Scale))

	tris := make([]scene.Triangle, 0, len(mesh.Faces))
	for _, idx := range mesh.Triangulate() {
		v0 := idx[0]
		v1 := idx[1]
		v2 := idx[2]
		if v0 < 0 || v0 >= len(mesh.Positions) ||
			v1 < 0 || v1 >= len(mesh.Positions) ||
			v2 < 0 || v2 >= len(mesh.Positions) {
			continue
		}
		tris = append(tris, scene.Triangle{
			V0:       TransformPoint(model, mesh.Positions[v0]),
			V1:       TransformPoint(model, mesh.Positions[v1]),
			V2:       TransformPoint(model, mesh.Positions[v2]),
			Material: mat,
		})
	}
	return tris, warnings, nil
}

// Watch watches dir for manifest changes (create/write) using fsnotify
// and emits the changed .json path on the returned channel. The render
// command does not call it, so edited manifests are not reloaded
// automatically; it changes no load semantics.
func (l *Loader) Watch(dir string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("sceneio: watch %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("sceneio: watch %s: %w", dir, err)
	}

	out := make(chan string)
	go func() {
		defer watcher.Close()
		defer close(out)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Ext(ev.Name) != ".json" {
					continue
				}
				out <- ev.Name
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

func vec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3{a[0], a[1], a[2]} }

func materialOf(m materialJSON) scene.Material {
	return scene.Material{
		Color:               vec3(m.Color),
		EmissionColor:       vec3(m.EmissionColor),
		EmissionStrength:    m.EmissionStrength,
		Smoothness:          m.Smoothness,
		SpecularProbability: m.SpecularProbability,
	}
}
