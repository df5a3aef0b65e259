package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"fireworksgl/internal/config"
	"fireworksgl/internal/render"
	"fireworksgl/internal/sim"
)

// Pipeline renders projected particles with a two-stage bloom:
// geometry -> blur -> bloom composite -> blur -> screen.
type Pipeline struct {
	log    *slog.Logger
	cfg    config.RenderConfig
	width  int
	height int

	geometry *program
	points   *program
	blur     *program
	bloom    *program
	screen   *program

	uPointSize  int32
	uHorizontal int32
	uExposure   int32
	uGamma      int32

	circleVAO     uint32
	circleVBO     uint32
	circleEBO     uint32
	circleIndices int32
	pointsVAO     uint32
	instanceVBO   uint32
	instanceCap   int
	quadVAO       uint32
	quadVBO       uint32
	dimsUBO       uint32

	scene   renderTarget
	bloomRT renderTarget
	blurRT  [2]renderTarget

	firstBlur  []render.BlurStep
	secondBlur []render.BlurStep
}

// NewPipeline builds every program, buffer and render target for a
// width x height viewport holding up to capacity particles. On error all
// partially created resources are released.
func NewPipeline(cfg config.RenderConfig, capacity, width, height int, log *slog.Logger) (*Pipeline, error) {
	p := &Pipeline{
		log:         log,
		cfg:         cfg,
		width:       width,
		height:      height,
		instanceCap: capacity,
		firstBlur:   render.BlurSchedule(cfg.BlurPassesFirst),
		secondBlur:  render.BlurSchedule(cfg.BlurPassesSecond),
	}
	if err := p.init(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) init() error {
	if err := p.initPrograms(); err != nil {
		return err
	}
	if err := p.initBuffers(); err != nil {
		return err
	}
	if err := p.initTargets(); err != nil {
		return err
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	return nil
}

func (p *Pipeline) initPrograms() error {
	programs := []struct {
		dst        **program
		name       string
		vert, frag string
	}{
		{&p.geometry, "geometry", geometryVertSrc, geometryFragSrc},
		{&p.points, "points", pointVertSrc, pointFragSrc},
		{&p.blur, "blur", quadVertSrc, blurFragSrc},
		{&p.bloom, "bloom", quadVertSrc, bloomFragSrc},
		{&p.screen, "screen", quadVertSrc, screenFragSrc},
	}
	for _, s := range programs {
		prog, err := newProgram(s.name, s.vert, s.frag)
		if err != nil {
			return err
		}
		*s.dst = prog
		p.log.Debug("shader program linked", "program", s.name)
	}

	for _, prog := range []*program{p.geometry, p.points} {
		if !prog.bindBlock(render.DimensionsBlockName, render.DimensionsBinding) {
			p.log.Warn("uniform block not active", "program", prog.name, "block", render.DimensionsBlockName)
		}
	}

	p.points.use()
	p.uPointSize = p.points.uniform("uPointSize")

	p.blur.use()
	gl.Uniform1i(p.blur.uniform("uImage"), 0)
	p.uHorizontal = p.blur.uniform("horizontal")

	p.bloom.use()
	gl.Uniform1i(p.bloom.uniform("texture0_screen"), 0)
	gl.Uniform1i(p.bloom.uniform("texture1_blur"), 1)

	p.screen.use()
	gl.Uniform1i(p.screen.uniform("uImage"), 0)
	p.uExposure = p.screen.uniform("uExposure")
	p.uGamma = p.screen.uniform("uGamma")

	gl.UseProgram(0)
	return nil
}

func (p *Pipeline) initBuffers() error {
	var err error
	for _, id := range []*uint32{&p.circleVBO, &p.circleEBO, &p.instanceVBO, &p.quadVBO, &p.dimsUBO} {
		if *id, err = genBuffer(); err != nil {
			return err
		}
	}
	for _, id := range []*uint32{&p.circleVAO, &p.pointsVAO, &p.quadVAO} {
		if *id, err = genVertexArray(); err != nil {
			return err
		}
	}

	// Dimensions uniform block.
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.dimsUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, render.DimensionsSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, render.DimensionsBinding, p.dimsUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	// Per-instance particle data, sized for a full pool.
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, p.instanceCap*int(render.InstanceStride), nil, gl.STREAM_DRAW)

	// Circle mesh + instance attributes.
	verts, indices := render.Circle(p.cfg.CircleSegments)
	p.circleIndices = int32(len(indices))
	gl.BindVertexArray(p.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.circleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	bindAttributes([]render.Attribute{render.CircleAttribute}, 3*4)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.circleEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
	bindAttributes(render.InstanceAttributes(), render.InstanceStride)

	// Point cores read the same instance buffer.
	gl.BindVertexArray(p.pointsVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
	bindAttributes(render.PointAttributes(), render.InstanceStride)

	// Fullscreen quad: (x, y, u, v).
	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(render.FullscreenQuad)*4, gl.Ptr(&render.FullscreenQuad[0]), gl.STATIC_DRAW)
	bindAttributes([]render.Attribute{
		{Location: 0, Components: 2},
		{Location: 1, Components: 2, Offset: 2 * 4},
	}, 4*4)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	p.log.Debug("render buffers prepared",
		"instance_bytes", p.instanceCap*int(render.InstanceStride),
		"circle_vertices", len(verts)/3,
		"circle_indices", p.circleIndices,
	)
	return nil
}

func (p *Pipeline) initTargets() error {
	targets := []struct {
		dst  *renderTarget
		name string
	}{
		{&p.scene, "geometry"},
		{&p.bloomRT, "bloom"},
		{&p.blurRT[0], "blur0"},
		{&p.blurRT[1], "blur1"},
	}
	for _, t := range targets {
		rt, status, err := newRenderTarget(p.width, p.height)
		if err != nil {
			return fmt.Errorf("%s target: %w", t.name, err)
		}
		*t.dst = rt
		if status != gl.FRAMEBUFFER_COMPLETE {
			p.log.Warn("framebuffer incomplete", "target", t.name, "status", fmt.Sprintf("0x%x", status))
		}
	}
	p.log.Debug("effect buffers prepared", "width", p.width, "height", p.height, "targets", len(targets))
	return nil
}

// Resize reallocates every render target for the new framebuffer size.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == p.width && height == p.height) {
		return
	}
	p.width, p.height = width, height
	for _, rt := range []*renderTarget{&p.scene, &p.bloomRT, &p.blurRT[0], &p.blurRT[1]} {
		rt.allocate(width, height)
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	p.log.Debug("render targets resized", "width", width, "height", height)
}

// Render draws one frame of data into the default framebuffer.
func (p *Pipeline) Render(data []sim.RenderData, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Resize(width, height)
	if len(data) > p.instanceCap {
		data = data[:p.instanceCap]
	}
	n := int32(len(data))

	dims := render.NewDimensions(width, height).Std140()
	gl.BindBuffer(gl.UNIFORM_BUFFER, p.dimsUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(dims), gl.Ptr(&dims[0]))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	if ptr, size := render.InstanceBytes(data); size > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, ptr)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)

	// Geometry.
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.scene.fbo)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if n > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		p.geometry.use()
		gl.BindVertexArray(p.circleVAO)
		gl.DrawElementsInstanced(gl.TRIANGLES, p.circleIndices, gl.UNSIGNED_INT, nil, n)

		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		p.points.use()
		gl.Uniform1f(p.uPointSize, p.cfg.PointSize)
		gl.BindVertexArray(p.pointsVAO)
		gl.DrawArrays(gl.POINTS, 0, n)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(p.quadVAO)

	// First blur, bloom composite, second blur.
	glow := p.runBlur(p.firstBlur, p.scene.tex)

	gl.BindFramebuffer(gl.FRAMEBUFFER, p.bloomRT.fbo)
	p.bloom.use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.scene.tex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, glow)
	gl.DrawArrays(gl.TRIANGLES, 0, render.FullscreenQuadVertices)
	gl.ActiveTexture(gl.TEXTURE0)

	final := p.runBlur(p.secondBlur, p.bloomRT.tex)

	// Present.
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	p.screen.use()
	gl.Uniform1f(p.uExposure, p.cfg.Exposure)
	gl.Uniform1f(p.uGamma, p.cfg.Gamma)
	gl.BindTexture(gl.TEXTURE_2D, final)
	gl.DrawArrays(gl.TRIANGLES, 0, render.FullscreenQuadVertices)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// runBlur executes steps starting from input and returns the texture
// holding the result. The quad VAO must be bound.
func (p *Pipeline) runBlur(steps []render.BlurStep, input uint32) uint32 {
	if len(steps) == 0 {
		return input
	}
	p.blur.use()
	gl.ActiveTexture(gl.TEXTURE0)
	for _, s := range steps {
		src := input
		if s.Source != render.InputSource {
			src = p.blurRT[s.Source].tex
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, p.blurRT[s.Target].fbo)
		var horizontal int32
		if s.Horizontal {
			horizontal = 1
		}
		gl.Uniform1i(p.uHorizontal, horizontal)
		gl.BindTexture(gl.TEXTURE_2D, src)
		gl.DrawArrays(gl.TRIANGLES, 0, render.FullscreenQuadVertices)
	}
	return p.blurRT[render.Output(steps)].tex
}

// Destroy releases every GL object. It tolerates a partially built pipeline
// and repeated calls.
func (p *Pipeline) Destroy() {
	if p == nil {
		return
	}
	for _, prog := range []*program{p.geometry, p.points, p.blur, p.bloom, p.screen} {
		prog.delete()
	}
	deleteBuffers(&p.circleVBO, &p.circleEBO, &p.instanceVBO, &p.quadVBO, &p.dimsUBO)
	deleteVertexArrays(&p.circleVAO, &p.pointsVAO, &p.quadVAO)
	for _, rt := range []*renderTarget{&p.scene, &p.bloomRT, &p.blurRT[0], &p.blurRT[1]} {
		rt.delete()
	}
}
