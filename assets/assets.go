// Package assets embeds the renderer's GLSL shader sources so the
// binary can be distributed standalone, the same embed-and-read
// pattern the teacher uses for its shader/texture assets, pared down to
// shaders only since this renderer has no texture non-goal to serve
// (spec.md section 1).
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders/*.vert shaders/*.frag shaders/*.comp
var embeddedFS embed.FS

// ReadShader reads a shader file from embedded assets. name is relative
// to the shaders directory, e.g. "pathtrace.comp".
func ReadShader(name string) ([]byte, error) {
	return embeddedFS.ReadFile("shaders/" + name)
}

// ListShaders returns every embedded shader file's path.
func ListShaders() ([]string, error) {
	var files []string
	err := fs.WalkDir(embeddedFS, "shaders", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
