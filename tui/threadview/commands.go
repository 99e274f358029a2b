package threadview

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalthread/app"
	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain/thread"
	"github.com/CrestNiraj12/terminalthread/infra/pager"
	"github.com/CrestNiraj12/terminalthread/tui/plain"
)

func (m Model) load(animate bool) tea.Cmd {
	asm := m.asm
	id := asm.StatusID()
	return func() tea.Msg {
		loaded, err := asm.Load(context.Background(), id)
		return LoadedMsg{Owner: asm, Loaded: loaded, Err: err, Animate: animate}
	}
}

func (m Model) resolve() tea.Cmd {
	asm := m.asm
	return func() tea.Msg {
		id, ok := asm.Resolve(context.Background())
		return ResolvedMsg{Owner: asm, ID: id, OK: ok}
	}
}

// HandleEvent returns a command that re-assembles the thread when ev may
// have changed it, or nil.
func (m Model) HandleEvent(ctx context.Context, ev app.StreamEvent, currentAccountID string) tea.Cmd {
	asm := m.asm
	if asm.Phase() != detail.PhaseDisplay {
		return nil
	}
	results := make(chan LoadedMsg, 1)
	started := asm.HandleEvent(ctx, ev, currentAccountID, func(l detail.Loaded, err error) {
		results <- LoadedMsg{Owner: asm, Loaded: l, Err: err, Animate: true}
	})
	if !started {
		return nil
	}
	return func() tea.Msg { return <-results }
}

// viewInPager suspends the TUI and shows the thread, as displayed, in $PAGER.
func (m Model) viewInPager() tea.Cmd {
	if m.pager == nil {
		return nil
	}
	asm := m.asm
	maxIndent := m.maxIndent
	text := plain.String(m.Title(), asm.Entries(), func(id string) thread.Indentation {
		return asm.Indentation(id, maxIndent, thread.CellMetrics)
	})
	cmd, path, err := m.pager.Cmd(text)
	if err != nil {
		return func() tea.Msg { return NoticeMsg{Text: "Pager: " + err.Error(), Error: true} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		_ = pager.Cleanup(path)
		if err != nil {
			return NoticeMsg{Text: "Pager: " + err.Error(), Error: true}
		}
		return nil
	})
}

func openURL(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if !isSafeExternalURL(rawURL) {
			return NoticeMsg{Text: "No link to open", Error: true}
		}
		if err := browserCommand(rawURL).Start(); err != nil {
			return NoticeMsg{Text: "Could not open browser: " + err.Error(), Error: true}
		}
		return NoticeMsg{Text: "Opened in browser"}
	}
}

func copyURL(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if !isSafeExternalURL(rawURL) {
			return NoticeMsg{Text: "No link to copy", Error: true}
		}
		if err := clipboard.WriteAll(rawURL); err != nil {
			return NoticeMsg{Text: "Copy failed: " + err.Error(), Error: true}
		}
		return NoticeMsg{Text: "Link copied"}
	}
}

func browserCommand(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
