// Package detail holds the state behind a status detail screen: the
// assembled thread, its depth table, collapse state, and scroll hints.
package detail

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/terminalthread/app"
	"github.com/CrestNiraj12/terminalthread/domain"
	"github.com/CrestNiraj12/terminalthread/domain/thread"
)

// Phase is the coarse state of the screen.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseDisplay
	PhaseError
)

// Navigator is the screen stack that owns the detail view.
type Navigator interface {
	// Back pops the detail view.
	Back()
}

// Scroll is the entry the renderer should bring into view. Seq increases on
// every new target so repeated targets are still observable.
type Scroll struct {
	Key     string
	ForUser bool
	Seq     uint64
}

// Deps are the collaborators an Assembler calls out to.
type Deps struct {
	Statuses  app.StatusService
	Search    app.SearchService
	Navigator Navigator
	Logger    zerolog.Logger
}

// Loaded is the raw result of fetching a status and its context.
type Loaded struct {
	Status      domain.Status
	Ancestors   []domain.Status
	Descendants []domain.Status
}

// Flatten returns ancestors, the status, then descendants.
func (l Loaded) Flatten() []domain.Status {
	out := make([]domain.Status, 0, len(l.Ancestors)+1+len(l.Descendants))
	out = append(out, l.Ancestors...)
	out = append(out, l.Status)
	out = append(out, l.Descendants...)
	return out
}

// Assembler builds and edits the displayed thread for one status.
//
// It is not safe for concurrent use. Load may run on any goroutine since it
// only reads the collaborators; every other method must be called from the
// goroutine that owns the screen.
type Assembler struct {
	deps      Deps
	log       zerolog.Logger
	statusID  string
	remoteURL string

	phase   Phase
	entries []thread.Entry
	err     error
	title   string
	depths  thread.Depths
	scroll  Scroll
}

// New creates an Assembler for a known status ID.
func New(statusID string, deps Deps) *Assembler {
	return &Assembler{
		deps:     deps,
		log:      deps.Logger.With().Str("component", "detail").Str("status_id", statusID).Logger(),
		statusID: statusID,
		phase:    PhaseLoading,
		depths:   thread.Depths{},
	}
}

// NewRemote creates an Assembler that first resolves a post URL from
// another server into a local status ID.
func NewRemote(remoteURL string, deps Deps) *Assembler {
	return &Assembler{
		deps:      deps,
		log:       deps.Logger.With().Str("component", "detail").Str("remote_url", remoteURL).Logger(),
		remoteURL: remoteURL,
		phase:     PhaseLoading,
		depths:    thread.Depths{},
	}
}

// NewFromStatus shows s immediately while its context is fetched.
func NewFromStatus(s domain.Status, deps Deps) *Assembler {
	a := New(s.ID, deps)
	a.phase = PhaseDisplay
	a.entries = []thread.Entry{thread.NewSingle(s)}
	a.title = titleFor(s)
	if s.IsReply() {
		a.depths[s.ID] = thread.Depth{Level: 1}
	}
	return a
}

func (a *Assembler) Phase() Phase      { return a.phase }
func (a *Assembler) Err() error        { return a.err }
func (a *Assembler) Title() string     { return a.title }
func (a *Assembler) StatusID() string  { return a.statusID }
func (a *Assembler) RemoteURL() string { return a.remoteURL }
func (a *Assembler) Scroll() Scroll    { return a.scroll }

// Entries returns the displayed thread. Callers must not modify it.
func (a *Assembler) Entries() []thread.Entry {
	if a.phase != PhaseDisplay {
		return nil
	}
	return a.entries
}

// Depth returns the recorded depth for a status ID.
func (a *Assembler) Depth(id string) thread.Depth {
	return a.depths.Of(id)
}

// Indentation reports the gutter for id, saturating at maxIndent.
func (a *Assembler) Indentation(id string, maxIndent uint, m thread.Metrics) thread.Indentation {
	return a.depths.IndentationOf(id, maxIndent, m)
}

// Fetch loads the thread. It returns false only when a remote URL could not
// be resolved, in which case nothing was fetched.
func (a *Assembler) Fetch(ctx context.Context) bool {
	if a.statusID == "" && a.remoteURL != "" {
		id, ok := a.Resolve(ctx)
		if !ok {
			return false
		}
		a.SetStatusID(id)
	}
	if a.statusID == "" {
		return false
	}
	a.Refresh(ctx, false)
	return true
}

// Refresh re-fetches the thread and replaces the display wholesale.
func (a *Assembler) Refresh(ctx context.Context, animate bool) {
	loaded, err := a.Load(ctx, a.statusID)
	if err != nil {
		a.Fail(err)
		return
	}
	a.Apply(loaded, animate)
}

// Resolve looks the remote URL up through search and returns the first
// matching status ID.
func (a *Assembler) Resolve(ctx context.Context) (string, bool) {
	if a.remoteURL == "" || a.deps.Search == nil {
		return "", false
	}
	results, err := a.deps.Search.SearchStatuses(ctx, a.remoteURL, 1)
	if err != nil {
		a.log.Warn().Err(err).Msg("remote status search failed")
		return "", false
	}
	if len(results) == 0 || results[0].ID == "" {
		a.log.Info().Msg("remote status not found")
		return "", false
	}
	return results[0].ID, true
}

// SetStatusID binds a resolved ID before the first Load.
func (a *Assembler) SetStatusID(id string) {
	a.statusID = id
	a.log = a.log.With().Str("status_id", id).Logger()
}

// Load fetches the status and its context concurrently and waits for both.
func (a *Assembler) Load(ctx context.Context, id string) (Loaded, error) {
	if id == "" {
		return Loaded{}, domain.ErrEmptyStatusID
	}
	var out Loaded
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.deps.Statuses.Status(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching status: %w", err)
		}
		out.Status = s
		return nil
	})
	g.Go(func() error {
		anc, desc, err := a.deps.Statuses.Context(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching context: %w", err)
		}
		out.Ancestors, out.Descendants = anc, desc
		return nil
	})
	if err := g.Wait(); err != nil {
		return Loaded{}, err
	}
	return out, nil
}

// Apply installs freshly loaded data. Any collapse state is dropped. When
// animate is false the view scrolls to the focused status.
func (a *Assembler) Apply(l Loaded, animate bool) {
	statuses := l.Flatten()
	a.depths = thread.ComputeDepths(statuses)
	a.entries = thread.Wrap(statuses)
	a.phase = PhaseDisplay
	a.err = nil
	a.title = titleFor(l.Status)
	if !animate {
		a.setScroll(thread.NewSingle(l.Status).ScrollKey(), false)
	}
	a.log.Debug().
		Int("ancestors", len(l.Ancestors)).
		Int("descendants", len(l.Descendants)).
		Bool("animate", animate).
		Msg("thread assembled")
}

// Fail records a load error. A missing status pops the screen instead of
// showing an error.
func (a *Assembler) Fail(err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.log.Info().Msg("status gone, navigating back")
		if a.deps.Navigator != nil {
			a.deps.Navigator.Back()
		}
		return
	}
	a.log.Error().Err(err).Msg("thread load failed")
	a.phase = PhaseError
	a.err = err
}

// Collapse folds the entries between beginID and endID.
func (a *Assembler) Collapse(beginID, endID string) bool {
	if a.phase != PhaseDisplay {
		return false
	}
	entries, ok := thread.Collapse(a.entries, beginID, endID)
	if ok {
		a.entries = entries
	}
	return ok
}

// Expand splices replacement back in place of the entry it was folded into.
func (a *Assembler) Expand(replacement []thread.Entry) bool {
	if a.phase != PhaseDisplay {
		return false
	}
	entries, hint, ok := thread.Expand(a.entries, replacement)
	if !ok {
		return false
	}
	a.entries = entries
	if hint.Key != "" {
		a.setScroll(hint.Key, hint.ForUser)
	}
	return true
}

// ExpandEntry reopens a placeholder in place.
func (a *Assembler) ExpandEntry(c thread.Collapsed) bool {
	return a.Expand(c.Folded())
}

// ShouldRefresh reports whether a stream event may have changed this
// thread: new or edited posts by the current account, and any deletion.
func (a *Assembler) ShouldRefresh(ev app.StreamEvent, currentAccountID string) bool {
	switch ev.Kind {
	case app.EventUpdate, app.EventStatusUpdate:
		return ev.Status != nil && currentAccountID != "" && ev.Status.AccountID == currentAccountID
	case app.EventDelete:
		return true
	default:
		return false
	}
}

// HandleEvent re-assembles the thread in the background when ev calls for
// it. Overlapping refreshes are not cancelled; the last one to finish wins.
// done, if non-nil, receives the result so the owner can apply it on its
// own goroutine.
func (a *Assembler) HandleEvent(ctx context.Context, ev app.StreamEvent, currentAccountID string, done func(Loaded, error)) bool {
	if !a.ShouldRefresh(ev, currentAccountID) || a.statusID == "" {
		return false
	}
	id := a.statusID
	a.log.Debug().Stringer("event", ev.Kind).Msg("stream event triggers refresh")
	go func() {
		loaded, err := a.Load(ctx, id)
		if done != nil {
			done(loaded, err)
		}
	}()
	return true
}

func (a *Assembler) setScroll(key string, forUser bool) {
	a.scroll = Scroll{Key: key, ForUser: forUser, Seq: a.scroll.Seq + 1}
}

func titleFor(s domain.Status) string {
	return "Post from " + s.DisplayName()
}
