// Package render executes the stage's cameras on OpenGL: image-target
// cameras render into framebuffers, window-target cameras into the
// backbuffer, and full-screen draws are resolved through their
// materials into shader passes.
package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/chromasim/internal/engine/assets"
	"github.com/Faultbox/chromasim/internal/engine/framebuffer"
	"github.com/Faultbox/chromasim/internal/engine/render/shaders"
	"github.com/Faultbox/chromasim/internal/engine/shader"
	"github.com/Faultbox/chromasim/internal/engine/stage"
)

// SceneFunc draws the application's scene content for one camera.
type SceneFunc func(cam *stage.Camera)

type program struct {
	id             uint32
	locSource      int32
	locPercentages int32
}

type meshBuffers struct {
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

// Renderer realizes assets and stage state into GL objects and runs
// the per-frame camera passes.
type Renderer struct {
	store *assets.Store
	stage *stage.Stage
	log   *zap.Logger

	programs map[[2]string]*program
	targets  map[assets.Handle[assets.Texture]]*framebuffer.Framebuffer
	meshes   map[assets.Handle[assets.Mesh]]*meshBuffers

	// Textures flagged modified since the last frame; their
	// framebuffers are resized before any camera runs.
	dirtyMu sync.Mutex
	dirty   []assets.Handle[assets.Texture]
}

// New initializes OpenGL and creates a renderer. Must be called after
// the GL context exists.
func New(store *assets.Store, st *stage.Stage, log *zap.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		store:    store,
		stage:    st,
		log:      log,
		programs: make(map[[2]string]*program),
		targets:  make(map[assets.Handle[assets.Texture]]*framebuffer.Framebuffer),
		meshes:   make(map[assets.Handle[assets.Mesh]]*meshBuffers),
	}

	store.Textures.OnModified(func(h assets.Handle[assets.Texture]) {
		r.dirtyMu.Lock()
		r.dirty = append(r.dirty, h)
		r.dirtyMu.Unlock()
	})

	return r, nil
}

// Frame renders every camera in ascending priority order. Scene
// content for cameras on the default layer is drawn by drawScene;
// full-screen draw entities run on every camera whose layer mask
// intersects theirs.
func (r *Renderer) Frame(windowWidth, windowHeight int32, drawScene SceneFunc) error {
	if err := r.flushDirtyTargets(); err != nil {
		return err
	}

	type pass struct {
		id  stage.CameraID
		cam *stage.Camera
	}
	var passes []pass
	r.stage.EachCamera(func(id stage.CameraID, cam *stage.Camera) {
		passes = append(passes, pass{id: id, cam: cam})
	})
	sort.Slice(passes, func(i, j int) bool {
		if passes[i].cam.Priority != passes[j].cam.Priority {
			return passes[i].cam.Priority < passes[j].cam.Priority
		}
		return passes[i].id < passes[j].id
	})

	for _, p := range passes {
		cam := p.cam
		switch cam.Target.Kind {
		case stage.TargetImage:
			fb, err := r.target(cam.Target.Image)
			if err != nil {
				return fmt.Errorf("camera %d render target: %w", p.id, err)
			}
			fb.Bind()
			fb.Clear(0.1, 0.1, 0.15, 1.0)
		case stage.TargetWindow:
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			gl.Viewport(0, 0, windowWidth, windowHeight)
			gl.ClearColor(0.1, 0.1, 0.15, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		}

		if drawScene != nil && cam.Layers.Intersects(stage.Layer(stage.LayerDefault)) {
			drawScene(cam)
		}

		for _, draw := range r.stage.Draws() {
			if !cam.Layers.Intersects(draw.Layers) {
				continue
			}
			if err := r.drawFullScreen(draw); err != nil {
				return fmt.Errorf("camera %d full-screen draw: %w", p.id, err)
			}
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (r *Renderer) drawFullScreen(draw *stage.FullScreenDraw) error {
	mat, err := r.store.Materials.Get(draw.Material)
	if err != nil {
		return fmt.Errorf("resolving material: %w", err)
	}

	prog, err := r.program(mat.VertexID, mat.FragmentID)
	if err != nil {
		return err
	}

	source, err := r.target(mat.Source)
	if err != nil {
		return fmt.Errorf("resolving source texture: %w", err)
	}

	buffers, err := r.mesh(draw.Mesh)
	if err != nil {
		return err
	}

	gl.UseProgram(prog.id)
	gl.Disable(gl.DEPTH_TEST)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, source.ColorTexture())
	if prog.locSource >= 0 {
		gl.Uniform1i(prog.locSource, 0)
	}
	if prog.locPercentages >= 0 {
		pct := mat.Percentages
		gl.UniformMatrix3fv(prog.locPercentages, 1, false, pct.Ptr())
	}

	gl.BindVertexArray(buffers.vao)
	gl.DrawElements(gl.TRIANGLES, buffers.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	return nil
}

// target returns the framebuffer backing an offscreen texture,
// creating it on first use.
func (r *Renderer) target(h assets.Handle[assets.Texture]) (*framebuffer.Framebuffer, error) {
	if fb, ok := r.targets[h]; ok {
		return fb, nil
	}
	desc, err := r.store.Textures.Get(h)
	if err != nil {
		return nil, err
	}
	fb, err := framebuffer.New(int32(desc.Width), int32(desc.Height), true)
	if err != nil {
		return nil, fmt.Errorf("allocating offscreen target %s: %w", h, err)
	}
	r.targets[h] = fb
	r.log.Debug("offscreen target allocated",
		zap.String("handle", h.String()),
		zap.Uint32("width", desc.Width),
		zap.Uint32("height", desc.Height),
	)
	return fb, nil
}

// program compiles and caches the shader pair for a material.
func (r *Renderer) program(vertexID, fragmentID string) (*program, error) {
	key := [2]string{vertexID, fragmentID}
	if p, ok := r.programs[key]; ok {
		return p, nil
	}

	vertSrc, ok := shaders.Lookup(vertexID)
	if !ok {
		return nil, fmt.Errorf("unknown vertex shader %q", vertexID)
	}
	fragSrc, ok := shaders.Lookup(fragmentID)
	if !ok {
		return nil, fmt.Errorf("unknown fragment shader %q", fragmentID)
	}

	id, err := shader.CompileProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling %s/%s: %w", vertexID, fragmentID, err)
	}

	p := &program{
		id:             id,
		locSource:      shader.GetUniform(id, "sourceImage"),
		locPercentages: shader.GetUniform(id, "percentages"),
	}
	r.programs[key] = p
	return p, nil
}

// mesh uploads a mesh's vertex data on first use. Positions and UVs
// are interleaved into one buffer.
func (r *Renderer) mesh(h assets.Handle[assets.Mesh]) (*meshBuffers, error) {
	if m, ok := r.meshes[h]; ok {
		return m, nil
	}
	desc, err := r.store.Meshes.Get(h)
	if err != nil {
		return nil, fmt.Errorf("resolving mesh: %w", err)
	}
	if len(desc.UVs) != len(desc.Positions) {
		return nil, fmt.Errorf("mesh %s has %d positions but %d uvs", h, len(desc.Positions), len(desc.UVs))
	}

	vertices := make([]float32, 0, len(desc.Positions)*5)
	for i, pos := range desc.Positions {
		vertices = append(vertices, pos[0], pos[1], pos[2], desc.UVs[i][0], desc.UVs[i][1])
	}

	m := &meshBuffers{count: int32(len(desc.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	r.meshes[h] = m
	return m, nil
}

// flushDirtyTargets resizes framebuffers whose textures were modified
// since the last frame, and drops cached state for removed textures.
func (r *Renderer) flushDirtyTargets() error {
	r.dirtyMu.Lock()
	dirty := r.dirty
	r.dirty = nil
	r.dirtyMu.Unlock()

	for _, h := range dirty {
		fb, cached := r.targets[h]
		desc, err := r.store.Textures.Get(h)
		if errors.Is(err, assets.ErrNotFound) {
			if cached {
				fb.Destroy()
				delete(r.targets, h)
			}
			continue
		}
		if err != nil {
			return err
		}
		if cached {
			fb.Resize(int32(desc.Width), int32(desc.Height))
			r.log.Debug("offscreen target resized",
				zap.String("handle", h.String()),
				zap.Uint32("width", desc.Width),
				zap.Uint32("height", desc.Height),
			)
		}
	}
	return nil
}

// ReadWindowPixels reads the backbuffer as RGBA bytes, bottom-left
// origin. Used for screenshots of the final post-processed output.
func (r *Renderer) ReadWindowPixels(width, height int32) []byte {
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Destroy releases all GL resources the renderer created.
func (r *Renderer) Destroy() {
	for _, fb := range r.targets {
		fb.Destroy()
	}
	for _, p := range r.programs {
		gl.DeleteProgram(p.id)
	}
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
}
