// Package threadview is the Bubble Tea model for one conversation thread.
package threadview

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain"
	"github.com/CrestNiraj12/terminalthread/infra/pager"
	"github.com/CrestNiraj12/terminalthread/tui/common"
)

// --- Messages ---

// LoadedMsg carries the result of a background thread load.
type LoadedMsg struct {
	Owner   *detail.Assembler
	Loaded  detail.Loaded
	Err     error
	Animate bool
}

// ResolvedMsg carries the result of resolving a remote post URL.
type ResolvedMsg struct {
	Owner *detail.Assembler
	ID    string
	OK    bool
}

// OpenThreadMsg asks the root model to push the thread of Status.
type OpenThreadMsg struct {
	Status domain.Status
}

// NoticeMsg sets the transient status line.
type NoticeMsg struct {
	Text  string
	Error bool
}

// --- Model ---

// closer records a request to leave the view. It is shared by copies of the
// model so the assembler can trigger it from inside Update.
type closer struct {
	closed bool
}

func (c *closer) Back() { c.closed = true }

// Model holds the state for one thread screen.
type Model struct {
	asm       *detail.Assembler
	nav       *closer
	keys      common.KeyMap
	spinner   spinner.Model
	maxIndent uint
	pager     *pager.EnvPager

	cursor     int
	start      int
	scrollSeq  uint64
	refreshing bool
	unresolved bool
	notice     string
	noticeErr  bool

	width  int
	height int
}

// Options configure a thread view.
type Options struct {
	MaxIndent uint
	Pager     *pager.EnvPager // nil disables the pager key
	Width     int
	Height    int
}

// New creates a view for a known status ID.
func New(statusID string, deps detail.Deps, opts Options) Model {
	nav := &closer{}
	deps.Navigator = nav
	return newModel(detail.New(statusID, deps), nav, opts)
}

// NewRemote creates a view that resolves a post URL from another server first.
func NewRemote(remoteURL string, deps detail.Deps, opts Options) Model {
	nav := &closer{}
	deps.Navigator = nav
	return newModel(detail.NewRemote(remoteURL, deps), nav, opts)
}

// NewFromStatus creates a view that shows s while its thread loads.
func NewFromStatus(s domain.Status, deps detail.Deps, opts Options) Model {
	nav := &closer{}
	deps.Navigator = nav
	return newModel(detail.NewFromStatus(s, deps), nav, opts)
}

func newModel(asm *detail.Assembler, nav *closer, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	maxIndent := opts.MaxIndent
	if maxIndent == 0 {
		maxIndent = 6
	}
	return Model{
		asm:       asm,
		nav:       nav,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		maxIndent: maxIndent,
		pager:     opts.Pager,
		width:     opts.Width,
		height:    opts.Height,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	if m.asm.StatusID() == "" && m.asm.RemoteURL() != "" {
		return tea.Batch(m.resolve(), m.spinner.Tick)
	}
	return tea.Batch(m.load(false), m.spinner.Tick)
}

// Closed reports whether the view asked to be popped.
func (m Model) Closed() bool { return m.nav.closed }

// Owns reports whether a background result belongs to this view.
func (m Model) Owns(owner *detail.Assembler) bool { return m.asm == owner }

// Assembler exposes the thread state behind the view.
func (m Model) Assembler() *detail.Assembler { return m.asm }

// Title is the assembler's title, or a placeholder while loading.
func (m Model) Title() string {
	if t := m.asm.Title(); t != "" {
		return t
	}
	return "Loading post"
}

// Update handles messages for the thread view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// View renders the thread view.
func (m Model) View() string {
	return m.render()
}
