package threadview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain/thread"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		return m.handleLoaded(msg)

	case ResolvedMsg:
		if msg.Owner != m.asm {
			return m, nil
		}
		if !msg.OK {
			m.unresolved = true
			return m, nil
		}
		m.asm.SetStatusID(msg.ID)
		return m, m.load(false)

	case NoticeMsg:
		m.notice = msg.Text
		m.noticeErr = msg.Error
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg LoadedMsg) (Model, tea.Cmd) {
	// Ignore results addressed to another screen.
	if msg.Owner != m.asm {
		return m, nil
	}
	m.refreshing = false
	if msg.Err != nil {
		m.asm.Fail(msg.Err)
		return m, nil
	}

	selected := m.selectedID()
	m.asm.Apply(msg.Loaded, msg.Animate)
	if msg.Animate && selected != "" {
		if i := thread.IndexOf(m.asm.Entries(), selected); i >= 0 {
			m.cursor = i
		}
	}
	m.syncScroll()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice = ""
	m.noticeErr = false

	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.Back()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing || m.asm.StatusID() == "" {
			return m, nil
		}
		animate := m.asm.Phase() == detail.PhaseDisplay
		m.refreshing = animate
		return m, m.load(animate)
	}

	entries := m.asm.Entries()
	if len(entries) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(entries) - 1

	case key.Matches(msg, m.keys.Collapse):
		m.collapseSelected()

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()

	case key.Matches(msg, m.keys.OpenURL):
		return m, openURL(entries[m.cursor].Head().URL)

	case key.Matches(msg, m.keys.Copy):
		return m, copyURL(entries[m.cursor].Head().URL)

	case key.Matches(msg, m.keys.Pager):
		return m, m.viewInPager()
	}

	m.ensureCursorVisible()
	return m, nil
}

// collapseSelected folds the replies below the selected entry, up to the next
// entry at the same or a shallower depth.
func (m *Model) collapseSelected() {
	entries := m.asm.Entries()
	if m.cursor >= len(entries) {
		return
	}
	begin := entries[m.cursor]
	level := m.asm.Depth(begin.ID()).Level

	end := -1
	for i := m.cursor + 1; i < len(entries); i++ {
		if m.asm.Depth(entries[i].ID()).Level <= level {
			end = i
			break
		}
	}
	switch {
	case end < 0:
		m.notice = "Nothing after this sub-thread to collapse against"
		return
	case end == m.cursor+1:
		m.notice = "No replies to collapse"
		return
	}

	if m.asm.Collapse(begin.ID(), entries[end].ID()) {
		m.syncScroll()
	}
}

func (m Model) openSelected() (Model, tea.Cmd) {
	entries := m.asm.Entries()
	switch e := entries[m.cursor].(type) {
	case thread.Collapsed:
		if m.asm.ExpandEntry(e) {
			m.syncScroll()
		}
		return m, nil
	case thread.Single:
		if e.ID() == m.asm.StatusID() {
			m.notice = "Already viewing this post"
			return m, nil
		}
		status := e.Status
		return m, func() tea.Msg { return OpenThreadMsg{Status: status} }
	}
	return m, nil
}

// syncScroll moves the cursor to a new scroll target from the assembler.
// Targets raised for the user's own expand keep the cursor where it is.
func (m *Model) syncScroll() {
	s := m.asm.Scroll()
	if s.Seq != m.scrollSeq {
		m.scrollSeq = s.Seq
		if !s.ForUser {
			if i := indexOfKey(m.asm.Entries(), s.Key); i >= 0 {
				m.cursor = i
			}
		}
	}
	if n := len(m.asm.Entries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.ensureCursorVisible()
}

func (m Model) selectedID() string {
	entries := m.asm.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return ""
	}
	return entries[m.cursor].ID()
}

func indexOfKey(entries []thread.Entry, key string) int {
	for i, e := range entries {
		if e.ScrollKey() == key {
			return i
		}
	}
	return -1
}
