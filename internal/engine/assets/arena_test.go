package assets

import (
	"errors"
	"testing"
)

func TestAddAndGet(t *testing.T) {
	arena := NewArena[Texture]()
	h := arena.Add(Texture{Label: "offscreen", Width: 800, Height: 600})

	tex, err := arena.Get(h)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tex.Width != 800 || tex.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", tex.Width, tex.Height)
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle[Texture]
	if !h.IsZero() {
		t.Error("zero-value handle should report IsZero")
	}

	arena := NewArena[Texture]()
	if _, err := arena.Get(h); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for zero handle, got %v", err)
	}
}

func TestStaleGeneration(t *testing.T) {
	arena := NewArena[Texture]()
	h := arena.Add(Texture{Label: "a"})

	if err := arena.Remove(h); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := arena.Get(h); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}

	// The slot is reused with a bumped generation; the old handle
	// must stay stale.
	h2 := arena.Add(Texture{Label: "b"})
	if _, err := arena.Get(h); !errors.Is(err, ErrNotFound) {
		t.Errorf("old handle resolved after slot reuse: %v", err)
	}
	tex, err := arena.Get(h2)
	if err != nil {
		t.Fatalf("get reused slot: %v", err)
	}
	if tex.Label != "b" {
		t.Errorf("expected label b, got %q", tex.Label)
	}
}

func TestGetMutUpdatesInPlace(t *testing.T) {
	arena := NewArena[Texture]()
	h := arena.Add(Texture{Width: 100, Height: 100})

	tex, err := arena.GetMut(h)
	if err != nil {
		t.Fatalf("getmut: %v", err)
	}
	tex.Width = 1920
	tex.Height = 1080

	got, err := arena.Get(h)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Width != 1920 || got.Height != 1080 {
		t.Errorf("mutation not visible, got %dx%d", got.Width, got.Height)
	}
}

func TestModifiedNotification(t *testing.T) {
	arena := NewArena[Texture]()
	h := arena.Add(Texture{})
	other := arena.Add(Texture{})

	var calls []Handle[Texture]
	arena.OnModified(func(h Handle[Texture]) {
		calls = append(calls, h)
	})

	arena.NotifyModified(h)
	arena.NotifyModified(other)
	arena.NotifyModified(h)

	if len(calls) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(calls))
	}
	if calls[0] != h || calls[1] != other || calls[2] != h {
		t.Errorf("notifications arrived for wrong handles: %v", calls)
	}
}

func TestLen(t *testing.T) {
	arena := NewArena[Mesh]()
	if arena.Len() != 0 {
		t.Errorf("expected empty arena, got %d", arena.Len())
	}

	a := arena.Add(Mesh{})
	arena.Add(Mesh{})
	if arena.Len() != 2 {
		t.Errorf("expected 2, got %d", arena.Len())
	}

	if err := arena.Remove(a); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if arena.Len() != 1 {
		t.Errorf("expected 1 after remove, got %d", arena.Len())
	}
}
