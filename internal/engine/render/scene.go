package render

import (
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/chromasim/internal/engine/render/shaders"
	"github.com/Faultbox/chromasim/internal/engine/shader"
)

// ColorWheel is a saturated hue wheel used by the viewer as test
// content: every hue is present, so each simulation mode is easy to
// judge at a glance.
type ColorWheel struct {
	programID uint32
	vao       uint32
	vbo       uint32
	count     int32
}

// NewColorWheel builds the wheel geometry and compiles its shaders.
func NewColorWheel(segments int) (*ColorWheel, error) {
	if segments < 3 {
		segments = 64
	}

	programID, err := shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, err
	}

	// Triangle fan: white center, saturated rim.
	vertices := []float32{0, 0, 1, 1, 1}
	for i := 0; i <= segments; i++ {
		angle := float64(i) / float64(segments) * 2 * gomath.Pi
		r, g, b := hueToRGB(float32(i) / float32(segments))
		vertices = append(vertices,
			float32(gomath.Cos(angle))*0.85,
			float32(gomath.Sin(angle))*0.85,
			r, g, b,
		)
	}

	w := &ColorWheel{programID: programID, count: int32(segments + 2)}
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 2*4)

	gl.BindVertexArray(0)
	return w, nil
}

// Draw renders the wheel with the current render target bound.
func (w *ColorWheel) Draw() {
	gl.UseProgram(w.programID)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, w.count)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases GL resources.
func (w *ColorWheel) Destroy() {
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteProgram(w.programID)
}

// hueToRGB converts a hue in [0,1] to a fully saturated RGB color.
func hueToRGB(h float32) (r, g, b float32) {
	h = float32(gomath.Mod(float64(h), 1)) * 6
	c := h - float32(gomath.Floor(float64(h)))
	switch int(h) % 6 {
	case 0:
		return 1, c, 0
	case 1:
		return 1 - c, 1, 0
	case 2:
		return 0, 1, c
	case 3:
		return 0, 1 - c, 1
	case 4:
		return c, 0, 1
	default:
		return 1, 0, 1 - c
	}
}
