package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFrameStart EventType = "frame_start"
	EventFrameEnd   EventType = "frame_end"
	EventCommand    EventType = "command"
	EventAssemble   EventType = "assemble"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FrameEvent marks the start or end of a frame.
type FrameEvent struct {
	EventBase
	Frame    int                `json:"frame"`
	Frames   int                `json:"frames"`
	Knobs    map[string]float64 `json:"knobs,omitempty"`
	Duration time.Duration      `json:"duration,omitempty"` // set on frame end
	Err      error              `json:"-"`
}

// CommandEvent reports a dispatched command.
type CommandEvent struct {
	EventBase
	Frame   int     `json:"frame"`
	Command Command `json:"command"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnFrameStart func(context.Context, *FrameEvent)
	OnFrameEnd   func(context.Context, *FrameEvent)
	OnCommand    func(context.Context, *CommandEvent)
}
