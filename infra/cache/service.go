package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalthread/app"
	"github.com/CrestNiraj12/terminalthread/domain"
)

// StatusService decorates an app.StatusService with the SQLite store.
// Online, every fetched status and context is written through. With Offline
// set, the upstream is never called and a miss reports domain.ErrNotFound.
type StatusService struct {
	upstream app.StatusService
	db       *DB
	log      zerolog.Logger
	Offline  bool
}

// NewStatusService wraps upstream, which may be nil when offline.
func NewStatusService(upstream app.StatusService, db *DB, logger zerolog.Logger, offline bool) *StatusService {
	return &StatusService{
		upstream: upstream,
		db:       db,
		log:      logger.With().Str("component", "cache").Logger(),
		Offline:  offline,
	}
}

func (s *StatusService) Status(ctx context.Context, id string) (domain.Status, error) {
	if s.Offline || s.upstream == nil {
		st, ok, err := s.db.GetStatus(ctx, id)
		if err != nil {
			return domain.Status{}, err
		}
		if !ok {
			return domain.Status{}, fmt.Errorf("status %s not cached: %w", id, domain.ErrNotFound)
		}
		return st, nil
	}

	st, err := s.upstream.Status(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.forget(ctx, id)
		}
		return domain.Status{}, err
	}
	if err := s.db.PutStatuses(ctx, st); err != nil {
		s.log.Warn().Err(err).Str("status_id", id).Msg("caching status failed")
	}
	return st, nil
}

func (s *StatusService) Context(ctx context.Context, id string) ([]domain.Status, []domain.Status, error) {
	if s.Offline || s.upstream == nil {
		anc, desc, ok, err := s.db.GetContext(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("context of %s not cached: %w", id, domain.ErrNotFound)
		}
		return anc, desc, nil
	}

	anc, desc, err := s.upstream.Context(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.db.PutContext(ctx, id, anc, desc); err != nil {
		s.log.Warn().Err(err).Str("status_id", id).Msg("caching context failed")
	}
	return anc, desc, nil
}

func (s *StatusService) forget(ctx context.Context, id string) {
	if err := s.db.DeleteStatus(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("status_id", id).Msg("evicting status failed")
	}
}
