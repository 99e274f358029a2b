package app

import (
	"context"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// StreamEventKind tells what happened to a status on the live stream.
type StreamEventKind int

const (
	// EventUpdate announces a new status.
	EventUpdate StreamEventKind = iota
	// EventStatusUpdate announces an edited status.
	EventStatusUpdate
	// EventDelete announces a removed status.
	EventDelete
)

func (k StreamEventKind) String() string {
	switch k {
	case EventUpdate:
		return "update"
	case EventStatusUpdate:
		return "status.update"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// StreamEvent is one notification from the streaming API.
type StreamEvent struct {
	Kind StreamEventKind
	// Status is set for update and status.update events.
	Status *domain.Status
	// DeletedID is set for delete events.
	DeletedID string
}

// StreamService delivers live events for the authenticated user.
type StreamService interface {
	// Subscribe starts streaming. The channel closes when ctx is done or
	// the connection drops.
	Subscribe(ctx context.Context) (<-chan StreamEvent, error)
}
