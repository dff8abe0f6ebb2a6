package postprocess

import "github.com/Faultbox/chromasim/internal/engine/assets"

// Shader identifiers understood by the render backend. The programs
// themselves are embedded in internal/engine/render/shaders.
const (
	// ShaderFullscreenVertex maps the oversized triangle to clip
	// space and passes UVs through.
	ShaderFullscreenVertex = "fullscreen_vertex"
	// ShaderColorBlindness samples the source texture and applies
	// the channel-mixing matrix.
	ShaderColorBlindness = "color_blindness"
)

// fullscreenTriangle builds a single triangle that covers all of clip
// space, avoiding the seam a two-triangle quad can show on some
// drivers. Positions are final clip-space coordinates; UVs run past
// 1.0 so the visible [0,1] range lands exactly on the viewport.
func fullscreenTriangle() assets.Mesh {
	return assets.Mesh{
		Positions: [][3]float32{
			{-1, -1, 0},
			{3, -1, 0},
			{-1, 3, 0},
		},
		UVs: [][2]float32{
			{0, 0},
			{2, 0},
			{0, 2},
		},
		Indices: []uint32{0, 1, 2},
	}
}
