// Package stage models the scene state the post-processing pipeline
// operates on: cameras with redirectable render targets, windows with
// a physical pixel size, and full-screen draw entities. The host
// engine owns scheduling; everything here is plain mutable state that
// the engine accesses from one goroutine per frame.
package stage

import (
	"fmt"

	"github.com/Faultbox/chromasim/internal/engine/assets"
	"github.com/Faultbox/chromasim/internal/engine/colorvision"
)

// CameraID identifies a camera on the stage.
type CameraID uint32

// WindowID identifies a window known to the stage.
type WindowID uint32

// TargetKind discriminates render target variants.
type TargetKind uint8

const (
	// TargetWindow renders to a window's backbuffer.
	TargetWindow TargetKind = iota
	// TargetImage renders to an offscreen texture.
	TargetImage
)

// RenderTarget is where a camera writes its output: a window or an
// offscreen texture.
type RenderTarget struct {
	Kind   TargetKind
	Window WindowID
	Image  assets.Handle[assets.Texture]
}

// WindowTarget returns a render target for the given window.
func WindowTarget(id WindowID) RenderTarget {
	return RenderTarget{Kind: TargetWindow, Window: id}
}

// ImageTarget returns a render target for the given texture.
func ImageTarget(h assets.Handle[assets.Texture]) RenderTarget {
	return RenderTarget{Kind: TargetImage, Image: h}
}

func (t RenderTarget) String() string {
	switch t.Kind {
	case TargetWindow:
		return fmt.Sprintf("window(%d)", t.Window)
	case TargetImage:
		return fmt.Sprintf("image(%s)", t.Image)
	default:
		return fmt.Sprintf("target(%d)", t.Kind)
	}
}

// Simulation is the per-camera color blindness marker state. A tagged
// camera without its own Simulation defers to the pipeline-wide
// default.
type Simulation struct {
	Mode    colorvision.Mode
	Enabled bool
}

// Camera renders entities on its layer mask into its target. Cameras
// run in ascending Priority order within a frame.
type Camera struct {
	Target   RenderTarget
	Priority int
	Layers   LayerMask

	// ShowUI tells the host UI subsystem whether to draw overlays on
	// this camera's pass. The pass builder clears it on tagged
	// cameras so UI renders once, on the relay camera.
	ShowUI bool

	// Simulation overrides the pipeline-wide default mode state when
	// non-nil. Only meaningful on tagged cameras.
	Simulation *Simulation
}

// FullScreenDraw is a mesh+material entity drawn by cameras whose
// layer mask intersects its own.
type FullScreenDraw struct {
	Mesh     assets.Handle[assets.Mesh]
	Material assets.Handle[assets.Material]
	Layers   LayerMask
}

// Window tracks a window's physical pixel size.
type Window struct {
	Width  uint32
	Height uint32
}

// Stage holds all cameras, windows, and full-screen draws.
type Stage struct {
	cameras    map[CameraID]*Camera
	nextCamera CameraID
	windows    map[WindowID]Window
	draws      []*FullScreenDraw
}

// New creates an empty stage.
func New() *Stage {
	return &Stage{
		cameras: make(map[CameraID]*Camera),
		windows: make(map[WindowID]Window),
	}
}

// AddCamera registers a camera and returns its ID.
func (s *Stage) AddCamera(c *Camera) CameraID {
	s.nextCamera++
	id := s.nextCamera
	s.cameras[id] = c
	return id
}

// Camera returns the camera with the given ID.
func (s *Stage) Camera(id CameraID) (*Camera, bool) {
	c, ok := s.cameras[id]
	return c, ok
}

// RemoveCamera drops the camera from the stage.
func (s *Stage) RemoveCamera(id CameraID) {
	delete(s.cameras, id)
}

// EachCamera calls fn for every camera. Iteration order is undefined;
// the renderer sorts by priority itself.
func (s *Stage) EachCamera(fn func(CameraID, *Camera)) {
	for id, c := range s.cameras {
		fn(id, c)
	}
}

// SetWindow records a window's current physical pixel size.
func (s *Stage) SetWindow(id WindowID, width, height uint32) {
	s.windows[id] = Window{Width: width, Height: height}
}

// Window returns the tracked size of a window.
func (s *Stage) Window(id WindowID) (Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// SpawnDraw adds a full-screen draw entity.
func (s *Stage) SpawnDraw(d *FullScreenDraw) {
	s.draws = append(s.draws, d)
}

// RemoveDraw drops a draw entity from the stage.
func (s *Stage) RemoveDraw(d *FullScreenDraw) {
	for i, existing := range s.draws {
		if existing == d {
			s.draws = append(s.draws[:i], s.draws[i+1:]...)
			return
		}
	}
}

// Draws returns all full-screen draw entities.
func (s *Stage) Draws() []*FullScreenDraw {
	return s.draws
}
