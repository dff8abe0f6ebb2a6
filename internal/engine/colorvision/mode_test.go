package colorvision

import (
	"testing"

	"github.com/Faultbox/chromasim/pkg/math"
)

func TestNormalIsIdentity(t *testing.T) {
	got := Normal.Percentages()
	want := math.Mat3Identity()
	if got != want {
		t.Errorf("expected identity matrix for normal vision, got %v", got)
	}
}

func TestPercentagesRowSums(t *testing.T) {
	// No row may amplify: each output channel mixes at most 100% of
	// the source channels.
	for _, mode := range Modes() {
		mat := mode.Percentages()
		for row := 0; row < 3; row++ {
			sum := mat.Row(row).Sum()
			if sum < 0 || sum > 1.0001 {
				t.Errorf("%s row %d sums to %f, want [0, 1]", mode, row, sum)
			}
		}
	}
}

func TestPercentagesComponentsInRange(t *testing.T) {
	for _, mode := range Modes() {
		mat := mode.Percentages()
		for i, v := range mat {
			if v < 0 || v > 1 {
				t.Errorf("%s element %d is %f, want [0, 1]", mode, i, v)
			}
		}
	}
}

func TestCycleVisitsAllModes(t *testing.T) {
	for _, start := range Modes() {
		seen := make(map[Mode]bool)
		m := start
		for i := 0; i < 9; i++ {
			if m == start && i > 0 {
				t.Fatalf("cycle from %s returned to start after %d steps, want 9", start, i)
			}
			if seen[m] {
				t.Fatalf("cycle from %s revisited %s after %d steps", start, m, i)
			}
			seen[m] = true
			m = m.Cycle()
		}
		if m != start {
			t.Errorf("cycling 9 times from %s ended at %s", start, m)
		}
	}
}

func TestCycleNeverReturnsSame(t *testing.T) {
	for _, mode := range Modes() {
		if mode.Cycle() == mode {
			t.Errorf("cycle from %s returned the same mode", mode)
		}
	}
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, mode := range Modes() {
		parsed, err := ParseMode(mode.String())
		if err != nil {
			t.Fatalf("parsing %q: %v", mode.String(), err)
		}
		if parsed != mode {
			t.Errorf("parsed %q to %v, want %v", mode.String(), parsed, mode)
		}
	}
}

func TestParseModeCaseInsensitive(t *testing.T) {
	parsed, err := ParseMode("  Deuteranopia ")
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if parsed != Deuteranopia {
		t.Errorf("expected deuteranopia, got %v", parsed)
	}
}

func TestParseModeUnknown(t *testing.T) {
	if _, err := ParseMode("monochromat"); err == nil {
		t.Error("expected error for unknown mode name")
	}
}

func TestAchromatopsiaIsGrayscale(t *testing.T) {
	mat := Achromatopsia.Percentages()
	out := mat.MulVec3(math.Vec3{X: 0.2, Y: 0.5, Z: 0.9})
	if out.X != out.Y || out.Y != out.Z {
		t.Errorf("achromatopsia should produce equal channels, got %v", out)
	}
}
