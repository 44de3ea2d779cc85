// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
	drag   Drag
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.drag.Move(int(e.X), int(e.Y))
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				if e.Button == sdl.BUTTON_LEFT {
					i.drag.Press(int(e.X), int(e.Y))
				}
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				if e.Button == sdl.BUTTON_LEFT {
					i.drag.Release()
				}
				i.events = append(i.events, Event{
					Type:   EventMouseUp,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Drag returns the left-button drag motion since the last call.
func (i *Input) Drag() (dx, dy int) {
	return i.drag.Take()
}

// Dragging reports whether the left button is held.
func (i *Input) Dragging() bool {
	return i.drag.Active()
}
