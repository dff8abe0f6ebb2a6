// Package postprocess builds and maintains the color blindness
// simulation pass. For every tagged camera it redirects rendering into
// an offscreen texture and spawns a relay camera that draws a
// full-screen triangle sampling that texture through the channel-mix
// shader into the camera's original target.
package postprocess

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/chromasim/internal/engine/assets"
	"github.com/Faultbox/chromasim/internal/engine/colorvision"
	"github.com/Faultbox/chromasim/internal/engine/stage"
)

// DefaultPriorityOffset is added to a tagged camera's priority to get
// its relay camera's priority. Any positive value works as long as the
// host renders cameras in ascending priority order; the offset leaves
// room for passes the application schedules in between.
const DefaultPriorityOffset = 10

// Config controls pipeline-wide behavior.
type Config struct {
	// DefaultMode applies to tagged cameras without their own
	// Simulation override.
	DefaultMode colorvision.Mode
	// Enabled applies to tagged cameras without their own override.
	Enabled bool
	// PriorityOffset is the relay camera priority delta. Zero means
	// DefaultPriorityOffset.
	PriorityOffset int
}

// Pass is the per-camera pipeline state created by CameraAdded.
type Pass struct {
	Camera   stage.CameraID
	Relay    stage.CameraID
	Texture  assets.Handle[assets.Texture]
	Material assets.Handle[assets.Material]
	Draw     *stage.FullScreenDraw

	// OriginalTarget is where the tagged camera rendered before
	// redirection; the relay camera now writes there.
	OriginalTarget stage.RenderTarget

	// trackedWindow is set when the original target is a window, so
	// resize events can be matched to this pass. Image targets keep
	// their setup-time size.
	trackedWindow    stage.WindowID
	hasTrackedWindow bool

	// Snapshot of the last state written to the material, for
	// change detection.
	lastMode    colorvision.Mode
	lastEnabled bool
}

// Pipeline owns every pass and keeps their GPU-visible state in sync
// with camera tags, mode changes, and window resizes. Methods are
// called from the host's frame loop; the pipeline itself does no
// locking.
type Pipeline struct {
	stage    *stage.Stage
	store    *assets.Store
	defaults stage.Simulation
	offset   int
	passes   map[stage.CameraID]*Pass
	log      *zap.Logger
}

// New creates a pipeline operating on the given stage and asset store.
func New(st *stage.Stage, store *assets.Store, cfg Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	offset := cfg.PriorityOffset
	if offset <= 0 {
		offset = DefaultPriorityOffset
	}
	return &Pipeline{
		stage:    st,
		store:    store,
		defaults: stage.Simulation{Mode: cfg.DefaultMode, Enabled: cfg.Enabled},
		offset:   offset,
		passes:   make(map[stage.CameraID]*Pass),
		log:      log,
	}
}

// CameraAdded sets up the post-processing pass for a newly tagged
// camera. The host calls it once when a camera gains the simulation
// tag; calling it again for the same camera is a no-op, so repeated
// detection never duplicates the pass.
//
// An unresolvable target window or image is a configuration error: no
// size can be allocated, setup fails, and the camera is left
// untouched. Setup never leaves a camera redirected without its relay.
func (p *Pipeline) CameraAdded(id stage.CameraID) error {
	if _, done := p.passes[id]; done {
		return nil
	}

	cam, ok := p.stage.Camera(id)
	if !ok {
		return fmt.Errorf("post-process setup: camera %d not found", id)
	}

	// Resolve the size of whatever the camera currently renders to.
	var width, height uint32
	var trackedWindow stage.WindowID
	hasTrackedWindow := false
	switch cam.Target.Kind {
	case stage.TargetWindow:
		win, ok := p.stage.Window(cam.Target.Window)
		if !ok {
			return fmt.Errorf("post-process setup: camera %d renders to window %d, but that window could not be found", id, cam.Target.Window)
		}
		width, height = win.Width, win.Height
		trackedWindow = cam.Target.Window
		hasTrackedWindow = true
	case stage.TargetImage:
		img, err := p.store.Textures.Get(cam.Target.Image)
		if err != nil {
			return fmt.Errorf("post-process setup: camera %d renders to an image, but that image could not be found: %w", id, err)
		}
		width, height = img.Width, img.Height
	default:
		return fmt.Errorf("post-process setup: camera %d has unknown target %s", id, cam.Target)
	}

	texture := p.store.Textures.Add(assets.Texture{
		Label:  fmt.Sprintf("colorblindness-source-%d", id),
		Width:  width,
		Height: height,
		Usage:  assets.UsageSampled | assets.UsageCopyDst | assets.UsageRenderAttachment,
	})

	effective := p.effectiveState(cam)
	material := p.store.Materials.Add(assets.Material{
		Source:      texture,
		Percentages: effectiveMode(effective).Percentages(),
		VertexID:    ShaderFullscreenVertex,
		FragmentID:  ShaderColorBlindness,
	})
	mesh := p.store.Meshes.Add(fullscreenTriangle())

	draw := &stage.FullScreenDraw{
		Mesh:     mesh,
		Material: material,
		Layers:   stage.Layer(stage.LayerPostProcess),
	}
	p.stage.SpawnDraw(draw)

	relay := p.stage.AddCamera(&stage.Camera{
		Target:   cam.Target,
		Priority: cam.Priority + p.offset,
		Layers:   stage.Layer(stage.LayerPostProcess),
		ShowUI:   true,
	})

	// Redirect last, once nothing can fail: the tagged camera now
	// draws into the offscreen texture and the relay takes over its
	// original target. UI moves to the relay so it renders once.
	originalTarget := cam.Target
	cam.Target = stage.ImageTarget(texture)
	cam.ShowUI = false

	p.passes[id] = &Pass{
		Camera:           id,
		Relay:            relay,
		Texture:          texture,
		Material:         material,
		Draw:             draw,
		OriginalTarget:   originalTarget,
		trackedWindow:    trackedWindow,
		hasTrackedWindow: hasTrackedWindow,
		lastMode:         effective.Mode,
		lastEnabled:      effective.Enabled,
	}

	p.log.Info("post-process pass created",
		zap.Uint32("camera", uint32(id)),
		zap.Uint32("relay", uint32(relay)),
		zap.String("target", originalTarget.String()),
		zap.Uint32("width", width),
		zap.Uint32("height", height),
	)
	return nil
}

// WindowResized records a window's new physical size and resizes the
// offscreen texture of every pass tracking that window, notifying
// dependents so cached GPU state is rebuilt. Passes on other windows
// and image-target passes are untouched.
func (p *Pipeline) WindowResized(id stage.WindowID, width, height uint32) error {
	p.stage.SetWindow(id, width, height)

	for _, pass := range p.passes {
		if !pass.hasTrackedWindow || pass.trackedWindow != id {
			continue
		}
		tex, err := p.store.Textures.GetMut(pass.Texture)
		if err != nil {
			return fmt.Errorf("resizing offscreen texture for camera %d: %w", pass.Camera, err)
		}
		if tex.Width == width && tex.Height == height {
			continue
		}
		tex.Width = width
		tex.Height = height
		p.store.Textures.NotifyModified(pass.Texture)

		p.log.Debug("offscreen texture resized",
			zap.Uint32("camera", uint32(pass.Camera)),
			zap.Uint32("width", width),
			zap.Uint32("height", height),
		)
	}
	return nil
}

// SyncModes diffs each tagged camera's mode/enabled state against the
// pass's snapshot and rewrites the material matrix only when it
// changed, so unchanged frames upload nothing. A material that no
// longer resolves means the host removed an asset the pipeline owns;
// that is unrecoverable for the pass and reported rather than skipped.
func (p *Pipeline) SyncModes() error {
	for id, pass := range p.passes {
		cam, ok := p.stage.Camera(id)
		if !ok {
			return fmt.Errorf("mode sync: tagged camera %d disappeared without teardown", id)
		}

		state := p.effectiveState(cam)
		if state.Mode == pass.lastMode && state.Enabled == pass.lastEnabled {
			continue
		}

		mat, err := p.store.Materials.GetMut(pass.Material)
		if err != nil {
			return fmt.Errorf("mode sync: material for camera %d: %w", id, err)
		}
		mat.Percentages = effectiveMode(state).Percentages()
		p.store.Materials.NotifyModified(pass.Material)

		pass.lastMode = state.Mode
		pass.lastEnabled = state.Enabled

		p.log.Info("simulation mode changed",
			zap.Uint32("camera", uint32(id)),
			zap.String("mode", state.Mode.String()),
			zap.Bool("enabled", state.Enabled),
		)
	}
	return nil
}

// CameraRemoved tears down the pass for a camera that lost its tag,
// restoring the original target and despawning the relay and draw.
func (p *Pipeline) CameraRemoved(id stage.CameraID) {
	pass, ok := p.passes[id]
	if !ok {
		return
	}
	delete(p.passes, id)

	if cam, ok := p.stage.Camera(id); ok {
		cam.Target = pass.OriginalTarget
		cam.ShowUI = true
	}
	p.stage.RemoveCamera(pass.Relay)
	p.stage.RemoveDraw(pass.Draw)
	_ = p.store.Meshes.Remove(pass.Draw.Mesh)
	_ = p.store.Materials.Remove(pass.Material)
	_ = p.store.Textures.Remove(pass.Texture)

	p.log.Info("post-process pass removed", zap.Uint32("camera", uint32(id)))
}

// SetDefaults replaces the pipeline-wide mode state used by tagged
// cameras without their own override. Takes effect on the next
// SyncModes.
func (p *Pipeline) SetDefaults(s stage.Simulation) {
	p.defaults = s
}

// Defaults returns the pipeline-wide mode state.
func (p *Pipeline) Defaults() stage.Simulation {
	return p.defaults
}

// Pass returns the pipeline state for a tagged camera.
func (p *Pipeline) Pass(id stage.CameraID) (*Pass, bool) {
	pass, ok := p.passes[id]
	return pass, ok
}

// effectiveState resolves a camera's mode state: its own override if
// present, otherwise the pipeline-wide default.
func (p *Pipeline) effectiveState(cam *stage.Camera) stage.Simulation {
	if cam.Simulation != nil {
		return *cam.Simulation
	}
	return p.defaults
}

// effectiveMode maps disabled state to Normal so switching the
// simulation off renders unmodified colors through the same pass.
func effectiveMode(s stage.Simulation) colorvision.Mode {
	if !s.Enabled {
		return colorvision.Normal
	}
	return s.Mode
}
