package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalthread/app"
	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain"
	"github.com/CrestNiraj12/terminalthread/tui/threadview"
)

type stubStatuses struct{}

var thread = []domain.Status{
	{ID: "a", AccountID: "me", Author: "A", Content: "root", CreatedAt: time.Now()},
	{ID: "b", AccountID: "you", Author: "B", Content: "reply", InReplyToID: "a", CreatedAt: time.Now()},
}

func (stubStatuses) Status(_ context.Context, id string) (domain.Status, error) {
	for _, s := range thread {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Status{}, domain.ErrNotFound
}

func (stubStatuses) Context(_ context.Context, id string) ([]domain.Status, []domain.Status, error) {
	for i, s := range thread {
		if s.ID == id {
			return thread[:i], thread[i+1:], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

type stubAccount struct{}

func (stubAccount) CurrentAccountID(context.Context) (string, error) { return "me", nil }

func newTestApp(id string) App {
	return NewApp(context.Background(), Deps{
		Statuses:  stubStatuses{},
		Account:   stubAccount{},
		Logger:    zerolog.Nop(),
		MaxIndent: 4,
	}, Start{StatusID: id})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func loadTop(t *testing.T, a App) App {
	t.Helper()
	top := a.stack[len(a.stack)-1]
	asm := top.Assembler()
	loaded, err := asm.Load(context.Background(), asm.StatusID())
	model, _ := a.Update(threadview.LoadedMsg{Owner: asm, Loaded: loaded, Err: err})
	return model.(App)
}

func TestApp_OpenThreadPushesAndEscPops(t *testing.T) {
	a := loadTop(t, newTestApp("a"))

	model, cmd := a.Update(threadview.OpenThreadMsg{Status: thread[1]})
	a = model.(App)
	if a.Depth() != 2 || cmd == nil {
		t.Fatalf("expected pushed thread view, depth=%d", a.Depth())
	}

	model, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.Depth() != 1 || isQuit(cmd) {
		t.Fatalf("expected pop back to first view, depth=%d", a.Depth())
	}

	model, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.Depth() != 0 || !isQuit(cmd) {
		t.Fatalf("expected quit after popping the last view")
	}
}

func TestApp_NotFoundPopsView(t *testing.T) {
	a := loadTop(t, newTestApp("a"))
	model, _ := a.Update(threadview.OpenThreadMsg{Status: domain.Status{ID: "gone", Content: "x"}})
	a = model.(App)

	a = loadTop(t, a)
	if a.Depth() != 1 {
		t.Fatalf("expected 404 to pop the view, depth=%d", a.Depth())
	}
}

func TestApp_RoutesResultsToOwner(t *testing.T) {
	a := newTestApp("a")
	first := a.stack[0].Assembler()
	model, _ := a.Update(threadview.OpenThreadMsg{Status: thread[1]})
	a = model.(App)

	loaded, err := first.Load(context.Background(), "a")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	model, _ = a.Update(threadview.LoadedMsg{Owner: first, Loaded: loaded})
	a = model.(App)
	if first.Phase() != detail.PhaseDisplay {
		t.Fatalf("expected first view to receive its own result")
	}
	if a.stack[1].Assembler().Title() != "Post from B" {
		t.Fatalf("top view should keep its seeded state")
	}
}

func TestApp_StreamEventTriggersRefresh(t *testing.T) {
	a := loadTop(t, newTestApp("a"))
	model, _ := a.Update(accountIDMsg{ID: "me"})
	a = model.(App)

	events := make(chan app.StreamEvent)
	_, cmd := a.Update(streamEventMsg{
		event:  app.StreamEvent{Kind: app.EventUpdate, Status: &thread[0]},
		events: events,
	})
	if cmd == nil {
		t.Fatalf("expected refresh and re-listen commands")
	}

	_, cmd = a.Update(streamClosedMsg{})
	if cmd != nil {
		t.Fatalf("closed stream should not schedule more work")
	}
}

func TestApp_QuitKey(t *testing.T) {
	a := newTestApp("a")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Fatalf("expected q to quit")
	}
}
