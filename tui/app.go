package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalthread/app"
	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/infra/pager"
	"github.com/CrestNiraj12/terminalthread/tui/common"
	"github.com/CrestNiraj12/terminalthread/tui/threadview"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Statuses  app.StatusService
	Search    app.SearchService
	Account   app.AccountService
	Stream    app.StreamService // nil disables live refresh
	Pager     *pager.EnvPager
	Logger    zerolog.Logger
	MaxIndent uint
}

// Start names the first thread to open: a local status ID or a remote post URL.
type Start struct {
	StatusID  string
	RemoteURL string
}

// App is the root Bubble Tea model. It keeps a stack of thread views and
// routes messages to them.
type App struct {
	ctx       context.Context
	deps      Deps
	log       zerolog.Logger
	keys      common.KeyMap
	stack     []threadview.Model
	accountID string
	width     int
	height    int
}

// NewApp creates the root model with all dependencies wired. ctx bounds the
// stream subscription.
func NewApp(ctx context.Context, deps Deps, start Start) App {
	a := App{
		ctx:  ctx,
		deps: deps,
		log:  deps.Logger.With().Str("component", "tui").Logger(),
		keys: common.DefaultKeyMap(),
	}
	var first threadview.Model
	if start.StatusID == "" && start.RemoteURL != "" {
		first = threadview.NewRemote(start.RemoteURL, a.detailDeps(), a.viewOptions())
	} else {
		first = threadview.New(start.StatusID, a.detailDeps(), a.viewOptions())
	}
	a.stack = []threadview.Model{first}
	return a
}

// Init starts the first view, fetches the current account ID, and opens
// the stream.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.initAccount()}
	if len(a.stack) > 0 {
		cmds = append(cmds, a.stack[0].Init())
	}
	if a.deps.Stream != nil {
		cmds = append(cmds, a.subscribe())
	}
	return tea.Batch(cmds...)
}

type accountIDMsg struct {
	ID string
}

type streamReadyMsg struct {
	events <-chan app.StreamEvent
}

type streamEventMsg struct {
	event  app.StreamEvent
	events <-chan app.StreamEvent
}

type streamClosedMsg struct {
	err error
}

func (a App) initAccount() tea.Cmd {
	account := a.deps.Account
	log := a.log
	return func() tea.Msg {
		if account == nil {
			return accountIDMsg{}
		}
		id, err := account.CurrentAccountID(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("current account lookup failed")
		}
		return accountIDMsg{ID: id}
	}
}

func (a App) subscribe() tea.Cmd {
	stream := a.deps.Stream
	ctx := a.ctx
	return func() tea.Msg {
		events, err := stream.Subscribe(ctx)
		if err != nil {
			return streamClosedMsg{err: err}
		}
		return streamReadyMsg{events: events}
	}
}

func waitForEvent(events <-chan app.StreamEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: ev, events: events}
	}
}

// Update handles messages and routes them to the thread views.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		cmds := make([]tea.Cmd, 0, len(a.stack))
		for i := range a.stack {
			var cmd tea.Cmd
			a.stack[i], cmd = a.stack[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case accountIDMsg:
		a.accountID = msg.ID
		return a, nil

	case streamReadyMsg:
		a.log.Info().Msg("listening for thread changes")
		return a, waitForEvent(msg.events)

	case streamEventMsg:
		next := waitForEvent(msg.events)
		if len(a.stack) == 0 {
			return a, next
		}
		top := a.stack[len(a.stack)-1]
		return a, tea.Batch(next, top.HandleEvent(a.ctx, msg.event, a.accountID))

	case streamClosedMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("stream unavailable, live refresh disabled")
		}
		return a, nil

	case spinner.TickMsg:
		// Each view's spinner filters ticks by its own ID.
		cmds := make([]tea.Cmd, 0, len(a.stack))
		for i := range a.stack {
			var cmd tea.Cmd
			a.stack[i], cmd = a.stack[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case threadview.OpenThreadMsg:
		view := threadview.NewFromStatus(msg.Status, a.detailDeps(), a.viewOptions())
		a.stack = append(a.stack, view)
		return a, view.Init()

	case threadview.LoadedMsg:
		return a.routeTo(msg.Owner, msg)

	case threadview.ResolvedMsg:
		return a.routeTo(msg.Owner, msg)
	}

	if len(a.stack) == 0 {
		return a, tea.Quit
	}
	top := len(a.stack) - 1
	var cmd tea.Cmd
	a.stack[top], cmd = a.stack[top].Update(msg)
	return a.prune(cmd)
}

func (a App) routeTo(owner *detail.Assembler, msg tea.Msg) (tea.Model, tea.Cmd) {
	for i := range a.stack {
		if a.stack[i].Owns(owner) {
			var cmd tea.Cmd
			a.stack[i], cmd = a.stack[i].Update(msg)
			return a.prune(cmd)
		}
	}
	return a, nil
}

// prune drops views that asked to go back. Leaving the last one quits.
func (a App) prune(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	kept := a.stack[:0:0]
	for _, v := range a.stack {
		if !v.Closed() {
			kept = append(kept, v)
		}
	}
	a.stack = kept
	if len(a.stack) == 0 {
		return a, tea.Quit
	}
	return a, cmd
}

// View renders the top thread view.
func (a App) View() string {
	if len(a.stack) == 0 {
		return ""
	}
	s := a.stack[len(a.stack)-1].View()
	if depth := len(a.stack); depth > 1 {
		s += "\n" + common.StatusBarStyle.Render(fmt.Sprintf("  thread depth %d • esc: back", depth))
	}
	return s
}

// Depth is the number of open thread views.
func (a App) Depth() int { return len(a.stack) }

func (a App) detailDeps() detail.Deps {
	return detail.Deps{
		Statuses: a.deps.Statuses,
		Search:   a.deps.Search,
		Logger:   a.deps.Logger,
	}
}

func (a App) viewOptions() threadview.Options {
	return threadview.Options{
		MaxIndent: a.deps.MaxIndent,
		Pager:     a.deps.Pager,
		Width:     a.width,
		Height:    a.height,
	}
}
