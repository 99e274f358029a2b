package main

import (
	"context"
	"fmt"
	"io"

	"github.com/CrestNiraj12/terminalthread/app/detail"
	"github.com/CrestNiraj12/terminalthread/domain"
	"github.com/CrestNiraj12/terminalthread/domain/thread"
	"github.com/CrestNiraj12/terminalthread/tui"
	"github.com/CrestNiraj12/terminalthread/tui/plain"
)

type printNavigator struct {
	back bool
}

func (n *printNavigator) Back() { n.back = true }

// printThread fetches the thread once and writes it as indented plain text.
func printThread(ctx context.Context, out io.Writer, start tui.Start, deps tui.Deps) error {
	nav := &printNavigator{}
	d := detail.Deps{
		Statuses:  deps.Statuses,
		Search:    deps.Search,
		Navigator: nav,
		Logger:    deps.Logger,
	}

	var asm *detail.Assembler
	if start.StatusID == "" {
		asm = detail.NewRemote(start.RemoteURL, d)
	} else {
		asm = detail.New(start.StatusID, d)
	}

	if !asm.Fetch(ctx) {
		return fmt.Errorf("could not resolve %s", start.RemoteURL)
	}
	if nav.back {
		return fmt.Errorf("status %s: %w", asm.StatusID(), domain.ErrNotFound)
	}
	if asm.Phase() == detail.PhaseError {
		return asm.Err()
	}

	indent := func(id string) thread.Indentation {
		return asm.Indentation(id, deps.MaxIndent, thread.CellMetrics)
	}
	return plain.WriteThread(out, asm.Title(), asm.Entries(), indent)
}
