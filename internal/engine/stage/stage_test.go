package stage

import "testing"

func TestLayerIsolation(t *testing.T) {
	if LayerPostProcess == LayerDefault {
		t.Fatal("post-process layer must be distinct from the default scene layer")
	}
	if Layer(LayerPostProcess).Intersects(Layer(LayerDefault)) {
		t.Error("isolation layer mask must not intersect the default layer mask")
	}
}

func TestLayerMaskIntersects(t *testing.T) {
	both := Layer(LayerDefault) | Layer(LayerPostProcess)
	if !both.Intersects(Layer(LayerPostProcess)) {
		t.Error("combined mask should intersect the isolation layer")
	}
	if Layer(3).Intersects(Layer(4)) {
		t.Error("distinct single layers should not intersect")
	}
}

func TestCameraRegistry(t *testing.T) {
	s := New()
	id := s.AddCamera(&Camera{Priority: 5})

	cam, ok := s.Camera(id)
	if !ok {
		t.Fatal("camera not found after add")
	}
	if cam.Priority != 5 {
		t.Errorf("priority = %d, want 5", cam.Priority)
	}

	second := s.AddCamera(&Camera{})
	if second == id {
		t.Error("camera IDs must be unique")
	}

	s.RemoveCamera(id)
	if _, ok := s.Camera(id); ok {
		t.Error("camera still present after remove")
	}
}

func TestWindowTracking(t *testing.T) {
	s := New()
	if _, ok := s.Window(1); ok {
		t.Error("unknown window should not resolve")
	}

	s.SetWindow(1, 800, 600)
	w, ok := s.Window(1)
	if !ok || w.Width != 800 || w.Height != 600 {
		t.Errorf("window = %+v, ok=%v", w, ok)
	}

	s.SetWindow(1, 1024, 768)
	w, _ = s.Window(1)
	if w.Width != 1024 || w.Height != 768 {
		t.Errorf("window not updated, got %+v", w)
	}
}

func TestDrawSpawnRemove(t *testing.T) {
	s := New()
	d := &FullScreenDraw{Layers: Layer(LayerPostProcess)}
	s.SpawnDraw(d)

	if len(s.Draws()) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(s.Draws()))
	}

	s.RemoveDraw(d)
	if len(s.Draws()) != 0 {
		t.Errorf("expected 0 draws after remove, got %d", len(s.Draws()))
	}

	// Removing again is a no-op.
	s.RemoveDraw(d)
}

func TestRenderTargetVariants(t *testing.T) {
	w := WindowTarget(7)
	if w.Kind != TargetWindow || w.Window != 7 {
		t.Errorf("window target = %+v", w)
	}
	if w.String() != "window(7)" {
		t.Errorf("String() = %q", w.String())
	}

	var img RenderTarget
	img.Kind = TargetImage
	if w == img {
		t.Error("distinct target variants must not compare equal")
	}
}
