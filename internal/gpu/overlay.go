package gpu

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pathtracer/internal/bvh"
)

// Overlay draws the BVH wireframe as a GL_LINES list over the
// accumulator's output, the same VAO/VBO wrapper shape as the teacher's
// ChunkMesh but for a position+color line-list vertex layout instead of
// position+normal+color+AO triangles.
type Overlay struct {
	VAO, VBO uint32
	Program  uint32
	vertices int32
}

// wireVertexFloats is the number of float32s per bvh.WireVertex: a
// vec3 position and a vec3 color.
const wireVertexFloats = 6

// NewOverlay compiles the wireframe vertex/fragment program and
// allocates a VAO/VBO sized for an empty vertex buffer; Upload fills it
// per scene load or BVH-depth change.
func NewOverlay(vertexSource, fragmentSource string) (*Overlay, error) {
	program, err := newLinkedProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	o := &Overlay{Program: program}
	gl.GenVertexArrays(1, &o.VAO)
	gl.GenBuffers(1, &o.VBO)

	gl.BindVertexArray(o.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.VBO)

	stride := int32(wireVertexFloats * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return o, nil
}

// Upload rewrites the wireframe vertex buffer, called whenever the BVH
// or the debug depth changes.
func (o *Overlay) Upload(verts []bvh.WireVertex) {
	data := make([]float32, 0, len(verts)*wireVertexFloats)
	for _, v := range verts {
		data = append(data,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Color.X(), v.Color.Y(), v.Color.Z(),
		)
	}
	o.vertices = int32(len(verts))

	gl.BindBuffer(gl.ARRAY_BUFFER, o.VBO)
	var ptr interface{}
	size := len(data) * 4
	if size > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ARRAY_BUFFER, size, ptr, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw renders the line list with the given view*projection matrix,
// using loadOp=load semantics (no clear) so the accumulator's output
// stays visible underneath, per spec.md section 4.6.
func (o *Overlay) Draw(viewProj mgl32.Mat4) {
	if o.vertices == 0 {
		return
	}
	gl.UseProgram(o.Program)
	loc := gl.GetUniformLocation(o.Program, gl.Str("viewProj\x00"))
	gl.UniformMatrix4fv(loc, 1, false, &viewProj[0])

	gl.BindVertexArray(o.VAO)
	gl.DrawArrays(gl.LINES, 0, o.vertices)
	gl.BindVertexArray(0)
}

// Delete releases the overlay's GL resources.
func (o *Overlay) Delete() {
	gl.DeleteVertexArrays(1, &o.VAO)
	gl.DeleteBuffers(1, &o.VBO)
	gl.DeleteProgram(o.Program)
}

func newLinkedProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	return program, nil
}
