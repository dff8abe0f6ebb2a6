package stage

// LayerMask restricts which entities a camera draws. Each entity lives
// on one or more of 32 layers; a camera renders an entity when their
// masks intersect.
type LayerMask uint32

const (
	// LayerDefault is where normal scene content lives.
	LayerDefault = 0

	// LayerPostProcess is reserved for full-screen post-processing
	// draws. It must stay distinct from every layer the application
	// uses for scene content, otherwise relay cameras would pick up
	// scene geometry and double-render it.
	LayerPostProcess = 31
)

// Layer returns the mask with only the given layer set.
func Layer(n uint) LayerMask {
	return LayerMask(1) << n
}

// Intersects reports whether the two masks share a layer.
func (m LayerMask) Intersects(other LayerMask) bool {
	return m&other != 0
}
