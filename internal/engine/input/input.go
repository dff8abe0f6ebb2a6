// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event. Resize events carry the
// originating window's ID so the post-process pipeline can match them
// against the window each pass tracks.
type Event struct {
	Type     EventType
	Key      sdl.Scancode
	WindowID uint32
	Width    int
	Height   int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to engine events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			// SIZE_CHANGED also fires for DPI changes, where the
			// drawable pixel size moves without a user resize.
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:     EventWindowResize,
					WindowID: e.WindowID,
					Width:    int(e.Data1),
					Height:   int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			t := EventKeyDown
			if e.Type == sdl.KEYUP {
				t = EventKeyUp
			}
			i.events = append(i.events, Event{
				Type: t,
				Key:  e.Keysym.Scancode,
			})
		}
	}

	return false
}

// Events returns the events collected by the last Update call.
func (i *Input) Events() []Event {
	return i.events
}
