// Package shaders provides embedded GLSL shader sources, addressed by
// the stable identifiers materials carry.
package shaders

import _ "embed"

// FullscreenVertexShader maps the oversized triangle to clip space.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

// ColorBlindFragmentShader applies the channel-mixing matrix.
//
//go:embed colorblind.frag
var ColorBlindFragmentShader string

// SceneVertexShader is the vertex shader for the test scene.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader is the fragment shader for the test scene.
//
//go:embed scene.frag
var SceneFragmentShader string

// Identifiers for embedded shaders. The post-processing pipeline's
// materials reference these; they must match the constants in
// internal/engine/postprocess.
const (
	IDFullscreenVertex = "fullscreen_vertex"
	IDColorBlindness   = "color_blindness"
	IDSceneVertex      = "scene_vertex"
	IDSceneFragment    = "scene_fragment"
)

var byID = map[string]string{
	IDFullscreenVertex: FullscreenVertexShader,
	IDColorBlindness:   ColorBlindFragmentShader,
	IDSceneVertex:      SceneVertexShader,
	IDSceneFragment:    SceneFragmentShader,
}

// Lookup resolves a shader identifier to its GLSL source.
func Lookup(id string) (string, bool) {
	src, ok := byID[id]
	return src, ok
}
