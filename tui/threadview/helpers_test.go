package threadview

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain"
)

type stubStatuses struct {
	thread []domain.Status
	err    error
}

func (s stubStatuses) Status(_ context.Context, id string) (domain.Status, error) {
	if s.err != nil {
		return domain.Status{}, s.err
	}
	for _, st := range s.thread {
		if st.ID == id {
			return st, nil
		}
	}
	return domain.Status{}, domain.ErrNotFound
}

func (s stubStatuses) Context(_ context.Context, id string) ([]domain.Status, []domain.Status, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	for i, st := range s.thread {
		if st.ID == id {
			return s.thread[:i], s.thread[i+1:], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

type stubSearch struct {
	results []domain.Status
}

func (s stubSearch) SearchStatuses(context.Context, string, int) ([]domain.Status, error) {
	return s.results, nil
}

func makeStatus(id, parent string) domain.Status {
	return domain.Status{
		ID:          id,
		AccountID:   "acct-" + id,
		Author:      "Author " + id,
		Username:    "user" + id,
		Content:     "hello from " + id,
		CreatedAt:   time.Now().Add(-time.Hour),
		URL:         "https://example.test/@user" + id + "/" + id,
		InReplyToID: parent,
	}
}

// sampleThread is a -> b -> c, b -> d, a -> e.
func sampleThread() []domain.Status {
	return []domain.Status{
		makeStatus("a", ""),
		makeStatus("b", "a"),
		makeStatus("c", "b"),
		makeStatus("d", "b"),
		makeStatus("e", "a"),
	}
}

func testDeps(statuses stubStatuses) detail.Deps {
	return detail.Deps{
		Statuses: statuses,
		Search:   stubSearch{},
		Logger:   zerolog.Nop(),
	}
}

// loaded runs the view's fetch synchronously and feeds the result back.
func loaded(m Model) Model {
	msg := m.load(false)()
	updated, _ := m.Update(msg)
	return updated
}

func ptr[T any](v T) *T { return &v }
