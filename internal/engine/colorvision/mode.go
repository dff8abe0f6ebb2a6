// Package colorvision defines the supported color vision deficiency
// modes and the channel-mixing matrices that simulate them.
package colorvision

import (
	"fmt"
	"strings"

	"github.com/Faultbox/chromasim/pkg/math"
)

// Mode selects a type of color blindness to simulate.
type Mode int

// Descriptions of the different types of color blindness are sourced from:
// https://www.nei.nih.gov/learn-about-eye-health/eye-conditions-and-diseases/color-blindness/types-color-blindness
const (
	// Normal full color vision.
	Normal Mode = iota
	// Protanopia is the inability to differentiate between green and red.
	Protanopia
	// Protanomaly is a condition where red looks more green.
	Protanomaly
	// Deuteranopia is the inability to differentiate between green and red.
	Deuteranopia
	// Deuteranomaly is a condition where green looks more red.
	Deuteranomaly
	// Tritanopia is the inability to differentiate between blue and green,
	// purple and red, and yellow and pink.
	Tritanopia
	// Tritanomaly is difficulty differentiating between blue and green,
	// and between yellow and red.
	Tritanomaly
	// Achromatopsia is the absence of color discrimination.
	Achromatopsia
	// Achromatomaly is a deficiency across all color cones.
	Achromatomaly

	modeCount = int(Achromatomaly) + 1
)

var modeNames = [modeCount]string{
	"normal",
	"protanopia",
	"protanomaly",
	"deuteranopia",
	"deuteranomaly",
	"tritanopia",
	"tritanomaly",
	"achromatopsia",
	"achromatomaly",
}

var modeDescriptions = [modeCount]string{
	"normal full color vision",
	"red cones absent",
	"red cones deficient",
	"green cones absent",
	"green cones deficient",
	"blue cones absent",
	"blue cones deficient",
	"no color discrimination",
	"all cones deficient",
}

// Channel-mixing table from Alan Zucconi's writeup of the ColorJack
// color matrix set:
// https://www.alanzucconi.com/2015/12/16/color-blindness/
// https://web.archive.org/web/20081014161121/http://www.colorjack.com/labs/colormatrix/
// Each entry holds the red, green, and blue output rows.
var mixTable = [modeCount][3]math.Vec3{
	Normal: {
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	},
	Protanopia: {
		{X: 0.56667, Y: 0.43333, Z: 0},
		{X: 0.55833, Y: 0.44167, Z: 0},
		{X: 0, Y: 0.24167, Z: 0.75833},
	},
	Protanomaly: {
		{X: 0.81667, Y: 0.18333, Z: 0},
		{X: 0.33333, Y: 0.66667, Z: 0},
		{X: 0, Y: 0.125, Z: 0.875},
	},
	Deuteranopia: {
		{X: 0.625, Y: 0.375, Z: 0},
		{X: 0.70, Y: 0.30, Z: 0},
		{X: 0, Y: 0.30, Z: 0.70},
	},
	Deuteranomaly: {
		{X: 0.80, Y: 0.20, Z: 0},
		{X: 0.25833, Y: 0.74167, Z: 0},
		{X: 0, Y: 0.14167, Z: 0.85833},
	},
	Tritanopia: {
		{X: 0.95, Y: 0.05, Z: 0},
		{X: 0, Y: 0.43333, Z: 0.56667},
		{X: 0, Y: 0.475, Z: 0.525},
	},
	Tritanomaly: {
		{X: 0.96667, Y: 0.03333, Z: 0},
		{X: 0, Y: 0.73333, Z: 0.26667},
		{X: 0, Y: 0.18333, Z: 0.81667},
	},
	Achromatopsia: {
		{X: 0.299, Y: 0.587, Z: 0.114},
		{X: 0.299, Y: 0.587, Z: 0.114},
		{X: 0.299, Y: 0.587, Z: 0.114},
	},
	Achromatomaly: {
		{X: 0.618, Y: 0.320, Z: 0.062},
		{X: 0.163, Y: 0.775, Z: 0.062},
		{X: 0.163, Y: 0.320, Z: 0.516},
	},
}

// Percentages returns the channel-mixing matrix for the mode: each row
// describes how much of the source red, green, and blue channels
// contribute to that output channel. Normal vision is the identity.
func (m Mode) Percentages() math.Mat3 {
	rows := mixTable[m]
	return math.Mat3FromRows(rows[0], rows[1], rows[2])
}

// Cycle returns the next mode, wrapping from Achromatomaly back to
// Normal. Useful for binding mode selection to a single key.
func (m Mode) Cycle() Mode {
	return Mode((int(m) + 1) % modeCount)
}

// String returns the lowercase mode name used in config files.
func (m Mode) String() string {
	if m < 0 || int(m) >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Description returns a one-line description of the deficiency.
func (m Mode) Description() string {
	if m < 0 || int(m) >= modeCount {
		return "unknown"
	}
	return modeDescriptions[m]
}

// ParseMode converts a config-file mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == lower {
			return Mode(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown color vision mode %q", name)
}

// Modes returns all modes in cycle order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}
