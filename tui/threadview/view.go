package threadview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain"
	"github.com/CrestNiraj12/terminalthread/domain/thread"
	"github.com/CrestNiraj12/terminalthread/tui/common"
)

const (
	defaultWidth = 80
	// Title, breadcrumb and status bar rows.
	chromeHeight = 7
)

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("terminalthread") + "\n")
	b.WriteString(common.BreadcrumbStyle.Render(ansi.Truncate(m.Title(), m.contentWidth()-2, "…")) + "\n")

	switch m.asm.Phase() {
	case detail.PhaseLoading:
		if m.unresolved {
			b.WriteString(common.ErrorStyle.Render("  Could not find "+m.asm.RemoteURL()+" on this server.") + "\n")
			b.WriteString(common.TimestampStyle.Render("  esc: back"))
		} else {
			b.WriteString("  " + m.spinner.View() + " Loading thread...")
		}
	case detail.PhaseError:
		b.WriteString(common.ErrorStyle.Render("  Error: "+m.asm.Err().Error()) + "\n")
		b.WriteString(common.TimestampStyle.Render("  r: retry • esc: back"))
	case detail.PhaseDisplay:
		b.WriteString(m.renderEntries())
	}

	b.WriteString("\n" + m.statusBar())
	return b.String()
}

func (m Model) renderEntries() string {
	entries := m.asm.Entries()
	if len(entries) == 0 {
		return "  Nothing to show."
	}

	avail := m.bodyHeight()
	used := 0
	var blocks []string
	for i := m.start; i < len(entries); i++ {
		block := m.renderEntry(entries[i], i == m.cursor)
		h := lipgloss.Height(block)
		if used+h > avail && len(blocks) > 0 {
			break
		}
		blocks = append(blocks, block)
		used += h
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderEntry(e thread.Entry, selected bool) string {
	ind := m.asm.Indentation(e.ID(), m.maxIndent, thread.CellMetrics)
	gutter := gutterFor(ind)
	marker := "  "
	if selected {
		marker = common.CursorStyle.Render("▌ ")
	}
	bodyWidth := max(m.contentWidth()-2-lipgloss.Width(gutter), 16)

	var lines []string
	switch e := e.(type) {
	case thread.Collapsed:
		label := fmt.Sprintf("⋯ %s from %s",
			common.Plural(e.Count(), "hidden reply", "hidden replies"), e.Head().DisplayName())
		lines = []string{common.CollapsedStyle.Render(ansi.Truncate(label, bodyWidth, "…"))}
	case thread.Single:
		lines = m.renderStatus(e.Status, ind.JumpUp, bodyWidth)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(marker + gutter + line + "\n")
	}
	return b.String()
}

func (m Model) renderStatus(s domain.Status, jumpUp bool, width int) []string {
	header := common.AuthorStyle.Render(s.DisplayName())
	if s.Username != "" && s.Username != s.DisplayName() {
		header += " " + common.UsernameStyle.Render("@"+s.Username)
	}
	if !s.CreatedAt.IsZero() {
		header += common.TimestampStyle.Render(" · " + humanize.Time(s.CreatedAt))
	}
	if s.EditedAt != nil {
		header += common.TimestampStyle.Render(" (edited)")
	}
	if jumpUp {
		header = common.JumpUpStyle.Render("↰ ") + header
	}

	style := common.ContentStyle
	if s.ID == m.asm.StatusID() {
		style = common.FocusContentStyle
	}
	content := style.Width(width).Render(s.Content)

	lines := []string{ansi.Truncate(header, width, "…")}
	lines = append(lines, strings.Split(content, "\n")...)

	var meta []string
	if s.RepliesCount > 0 {
		meta = append(meta, "↩ "+common.Plural(s.RepliesCount, "reply", "replies"))
	}
	if s.LikesCount > 0 {
		meta = append(meta, fmt.Sprintf("♥ %d", s.LikesCount))
	}
	if len(meta) > 0 {
		lines = append(lines, common.TimestampStyle.Render(strings.Join(meta, " · ")))
	}
	return lines
}

// gutterFor draws one bar per indentation level, sized from the inset so
// the bars saturate with it.
func gutterFor(ind thread.Indentation) string {
	if ind.Level == 0 || ind.Inset <= 0 {
		return ""
	}
	m := thread.CellMetrics
	levels := int((ind.Inset + m.Gap - m.Base) / (m.Bar + m.Gap))
	return common.GutterStyle.Render(strings.Repeat("│ ", levels))
}

func (m Model) statusBar() string {
	var parts []string
	if m.refreshing {
		parts = append(parts, m.spinner.View()+" Refreshing...")
	}
	if m.notice != "" {
		style := common.SuccessStyle
		if m.noticeErr {
			style = common.ErrorStyle
		}
		parts = append(parts, style.Render(m.notice))
	}

	hints := common.StatusBarStyle.
		Width(max(m.contentWidth()-2, 16)).
		Render("  " + strings.Join(m.keys.HelpLine(), " • "))
	if len(parts) == 0 {
		return hints
	}
	return "  " + strings.Join(parts, "  ") + "\n" + hints
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return int(^uint(0) >> 1)
	}
	return max(m.height-chromeHeight, 3)
}

// ensureCursorVisible scrolls the window so the selected entry is on screen.
func (m *Model) ensureCursorVisible() {
	entries := m.asm.Entries()
	if len(entries) == 0 {
		m.start = 0
		return
	}
	if m.cursor < m.start {
		m.start = m.cursor
	}
	avail := m.bodyHeight()
	for m.start < m.cursor && m.heightBetween(m.start, m.cursor) > avail {
		m.start++
	}
}

func (m Model) heightBetween(from, to int) int {
	entries := m.asm.Entries()
	h := 0
	for i := from; i <= to && i < len(entries); i++ {
		h += lipgloss.Height(m.renderEntry(entries[i], i == m.cursor))
	}
	return h
}
