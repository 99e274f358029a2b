package app

import (
	"context"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// StatusService fetches statuses and their conversations.
type StatusService interface {
	// Status returns a single status by ID.
	Status(ctx context.Context, id string) (domain.Status, error)

	// Context returns the conversation around a status: ancestors
	// oldest-first and descendants in server order.
	Context(ctx context.Context, id string) (ancestors, descendants []domain.Status, err error)
}

// SearchService resolves free-form queries, such as a remote post URL.
type SearchService interface {
	// SearchStatuses returns statuses matching query, best match first.
	SearchStatuses(ctx context.Context, query string, limit int) ([]domain.Status, error)
}
