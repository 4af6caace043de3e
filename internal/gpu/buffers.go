package gpu

import "github.com/go-gl/gl/v4.3-core/gl"

// Buffer wraps one OpenGL buffer object bound as a shader storage
// buffer or uniform buffer, mirroring the teacher's ChunkMesh's
// thin VAO/VBO/EBO wrapper but for SSBOs rather than vertex data.
type Buffer struct {
	ID     uint32
	Target uint32
	Size   int
}

// NewStorageBuffer allocates a GL_SHADER_STORAGE_BUFFER of len(data)
// bytes and uploads data as its initial contents. usage is typically
// gl.STATIC_DRAW for geometry/BVH buffers (rewritten only on scene
// change) or gl.DYNAMIC_DRAW for the performance-counter buffer
// (rewritten every frame), per spec.md section 5's shared-resource model.
func NewStorageBuffer(data []byte, usage uint32) *Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, id)
	size := len(data)
	var ptr interface{}
	if size > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, ptr, usage)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return &Buffer{ID: id, Target: gl.SHADER_STORAGE_BUFFER, Size: size}
}

// NewUniformBuffer allocates a GL_UNIFORM_BUFFER sized for the packed
// Uniforms block (internal/gpulayout.UniformsSize bytes).
func NewUniformBuffer(size int) *Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, id)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return &Buffer{ID: id, Target: gl.UNIFORM_BUFFER, Size: size}
}

// Update rewrites the buffer's full contents. Used once per frame for
// the uniform buffer; used on scene reload for geometry/BVH buffers.
func (b *Buffer) Update(data []byte) {
	gl.BindBuffer(b.Target, b.ID)
	gl.BufferSubData(b.Target, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(b.Target, 0)
}

// BindBase binds the buffer to an indexed binding point, the mechanism
// both SSBOs and the uniform buffer use to reach the shader's layout
// bindings.
func (b *Buffer) BindBase(index uint32) {
	gl.BindBufferBase(b.Target, index, b.ID)
}

// Delete releases the underlying GL buffer object.
func (b *Buffer) Delete() {
	gl.DeleteBuffers(1, &b.ID)
}
