// Package plain renders a thread as indented text for pipes and pagers.
package plain

import (
	"fmt"
	"io"
	"strings"

	"github.com/CrestNiraj12/terminalthread/domain/thread"
	"github.com/CrestNiraj12/terminalthread/tui/common"
)

// IndentFunc reports the gutter for an entry.
type IndentFunc func(id string) thread.Indentation

// WriteThread writes title and then every entry separated by blank lines.
// Insets are taken as cell counts.
func WriteThread(w io.Writer, title string, entries []thread.Entry, indent IndentFunc) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeEntry(w, e, indent(e.ID())); err != nil {
			return err
		}
	}
	return nil
}

// String is WriteThread into a string.
func String(title string, entries []thread.Entry, indent IndentFunc) string {
	var b strings.Builder
	_ = WriteThread(&b, title, entries, indent)
	return b.String()
}

func writeEntry(w io.Writer, e thread.Entry, ind thread.Indentation) error {
	pad := strings.Repeat(" ", int(ind.Inset))
	if ind.Level > 0 {
		pad += " "
	}

	head := e.Head()
	header := head.DisplayName()
	if head.Username != "" && head.Username != header {
		header += " (@" + head.Username + ")"
	}
	if ind.JumpUp {
		header = "^ " + header
	}

	lines := []string{header}
	switch e := e.(type) {
	case thread.Collapsed:
		lines = append(lines, "["+common.Plural(e.Count(), "hidden reply", "hidden replies")+"]")
	case thread.Single:
		lines = append(lines, strings.Split(e.Status.Content, "\n")...)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, pad+line); err != nil {
			return err
		}
	}
	return nil
}
