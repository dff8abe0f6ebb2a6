package assets

import (
	"github.com/Faultbox/chromasim/pkg/math"
)

// TextureUsage flags describe how the GPU may use a texture.
type TextureUsage uint8

const (
	// UsageSampled marks the texture readable from shaders.
	UsageSampled TextureUsage = 1 << iota
	// UsageCopyDst marks the texture a copy destination.
	UsageCopyDst
	// UsageRenderAttachment marks the texture usable as a color attachment.
	UsageRenderAttachment
)

// Texture describes a 2D color texture. Offscreen render targets are
// single-sample, mipless, and zero-initialized at creation.
type Texture struct {
	Label  string
	Width  uint32
	Height uint32
	Usage  TextureUsage
}

// Mesh holds full-screen draw geometry. Positions are in clip space;
// the post-process vertex shader passes them through untouched.
type Mesh struct {
	Positions [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// Material binds a source texture and a channel-mixing matrix to a
// pair of shader programs, addressed by stable embedded identifiers.
type Material struct {
	Source      Handle[Texture]
	Percentages math.Mat3
	VertexID    string
	FragmentID  string
}

// Store groups the arenas for every asset type the pipeline touches.
type Store struct {
	Textures  *Arena[Texture]
	Meshes    *Arena[Mesh]
	Materials *Arena[Material]
}

// NewStore creates empty arenas.
func NewStore() *Store {
	return &Store{
		Textures:  NewArena[Texture](),
		Meshes:    NewArena[Mesh](),
		Materials: NewArena[Material](),
	}
}
