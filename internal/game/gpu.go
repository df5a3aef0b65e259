package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"fireworksgl/internal/cli"
	"fireworksgl/internal/render"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// program is a linked shader program. delete is safe to call more than once.
type program struct {
	id   uint32
	name string
}

func newProgram(name, vertSrc, fragSrc string) (*program, error) {
	id, err := linkProgram(name, vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &program{id: id, name: name}, nil
}

func (p *program) use() { gl.UseProgram(p.id) }

func (p *program) uniform(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

// bindBlock attaches the named uniform block to a binding point. GLSL 4.1
// has no layout(binding) for blocks, so it is done from the API side.
func (p *program) bindBlock(name string, binding uint32) bool {
	idx := gl.GetUniformBlockIndex(p.id, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return false
	}
	gl.UniformBlockBinding(p.id, idx, binding)
	return true
}

func (p *program) delete() {
	if p == nil || p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
}

// renderTarget is a framebuffer with a single HDR colour texture.
type renderTarget struct {
	fbo uint32
	tex uint32
}

// newRenderTarget allocates a w x h target. A framebuffer the driver
// reports incomplete is still returned along with its status.
func newRenderTarget(w, h int) (renderTarget, uint32, error) {
	var rt renderTarget
	gl.GenFramebuffers(1, &rt.fbo)
	gl.GenTextures(1, &rt.tex)
	if rt.fbo == 0 || rt.tex == 0 {
		rt.delete()
		return renderTarget{}, 0, fmt.Errorf("%w: no framebuffer or texture name", cli.ErrPrepareEffect)
	}

	gl.BindTexture(gl.TEXTURE_2D, rt.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	rt.allocate(w, h)

	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return rt, status, nil
}

// allocate (re)creates the texture storage; the attachment stays valid.
func (rt *renderTarget) allocate(w, h int) {
	gl.BindTexture(gl.TEXTURE_2D, rt.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(w), int32(h), 0, gl.RGBA, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (rt *renderTarget) delete() {
	if rt.tex != 0 {
		gl.DeleteTextures(1, &rt.tex)
		rt.tex = 0
	}
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
}

func genBuffer() (uint32, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%w: no buffer name", cli.ErrPrepareRender)
	}
	return id, nil
}

func genVertexArray() (uint32, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("%w: no vertex array name", cli.ErrPrepareRender)
	}
	return id, nil
}

func deleteBuffers(ids ...*uint32) {
	for _, id := range ids {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
}

func deleteVertexArrays(ids ...*uint32) {
	for _, id := range ids {
		if *id != 0 {
			gl.DeleteVertexArrays(1, id)
			*id = 0
		}
	}
}

// bindAttributes describes attrs against the currently bound ARRAY_BUFFER.
func bindAttributes(attrs []render.Attribute, stride int32) {
	for _, a := range attrs {
		gl.EnableVertexAttribArray(a.Location)
		if a.Integer {
			gl.VertexAttribIPointer(a.Location, a.Components, gl.INT, stride, glOffset(a.Offset))
		} else {
			gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, stride, glOffset(a.Offset))
		}
		gl.VertexAttribDivisor(a.Location, a.Divisor)
	}
}
