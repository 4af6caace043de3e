package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// workgroupSize matches the 8x8 invocation layout pathtrace.comp
// declares, per spec.md section 4.4.
const workgroupSize = 8

// ComputePipeline wraps a single compute-shader program.
type ComputePipeline struct {
	Program uint32
}

// NewComputePipeline compiles and links source as a GL_COMPUTE_SHADER
// program, the compute analogue of the teacher's NewShader for
// vertex/fragment pairs.
func NewComputePipeline(source string) (*ComputePipeline, error) {
	shader, err := compileShader(source, gl.COMPUTE_SHADER)
	if err != nil {
		return nil, fmt.Errorf("compute shader: %w", err)
	}
	defer gl.DeleteShader(shader)

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("link error: %s", log)
	}

	return &ComputePipeline{Program: program}, nil
}

// Dispatch binds the program and dispatches enough 8x8 workgroups to
// cover a width x height image, rounding up on each axis.
func (p *ComputePipeline) Dispatch(width, height int) {
	gl.UseProgram(p.Program)
	groupsX, groupsY := workgroupCounts(width, height)
	gl.DispatchCompute(groupsX, groupsY, 1)
}

// workgroupCounts computes the number of 8x8 workgroups needed to cover
// a width x height image, rounding up on each axis.
func workgroupCounts(width, height int) (uint32, uint32) {
	groupsX := uint32((width + workgroupSize - 1) / workgroupSize)
	groupsY := uint32((height + workgroupSize - 1) / workgroupSize)
	return groupsX, groupsY
}

// Delete releases the underlying program.
func (p *ComputePipeline) Delete() {
	gl.DeleteProgram(p.Program)
}

// Barrier inserts the memory barriers required by spec.md section 5's
// ordering constraints: a frame's compute pass must complete, and its
// image writes become visible, before the accumulator pass reads them.
func Barrier() {
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.SHADER_STORAGE_BARRIER_BIT)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csource, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}
