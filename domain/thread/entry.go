// Package thread turns a flat conversation into display entries: reply
// depths, jump-up markers, and collapsible runs of replies.
package thread

import (
	"slices"
	"time"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// Entry is one row of a displayed thread. It is either a Single status or a
// Collapsed placeholder standing in for a run of entries.
type Entry interface {
	// Head is the status that gives the entry its identity.
	Head() domain.Status
	// ID is the head status ID.
	ID() string
	// ScrollKey changes when the head is edited, even though ID does not.
	ScrollKey() string
	// Leaves counts the statuses the entry stands for.
	Leaves() int

	entry()
}

// Single wraps exactly one status.
type Single struct {
	Status domain.Status
}

// NewSingle wraps s as an entry.
func NewSingle(s domain.Status) Single {
	return Single{Status: s}
}

func (e Single) Head() domain.Status { return e.Status }
func (e Single) ID() string          { return e.Status.ID }
func (e Single) ScrollKey() string   { return scrollKey(e.Status) }
func (e Single) Leaves() int         { return 1 }
func (Single) entry()                {}

// Collapsed folds a contiguous run of entries into one placeholder.
type Collapsed struct {
	head   domain.Status
	anchor string
	folded []Entry
	count  int
}

func (e Collapsed) Head() domain.Status { return e.head }
func (e Collapsed) ID() string          { return e.head.ID }
func (e Collapsed) ScrollKey() string   { return scrollKey(e.head) }
func (e Collapsed) Leaves() int         { return e.count }
func (Collapsed) entry()                {}

// Count is the number of statuses hidden behind the placeholder.
func (e Collapsed) Count() int { return e.count }

// Anchor is the ID of the entry the run was collapsed after.
func (e Collapsed) Anchor() string { return e.anchor }

// Folded returns the hidden entries in display order.
func (e Collapsed) Folded() []Entry { return slices.Clone(e.folded) }

func (e *Collapsed) add(entries ...Entry) {
	for _, en := range entries {
		if len(e.folded) == 0 {
			e.head = en.Head()
		}
		e.folded = append(e.folded, en)
		e.count += en.Leaves()
	}
}

// Wrap turns statuses into Single entries, preserving order.
func Wrap(statuses []domain.Status) []Entry {
	out := make([]Entry, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, NewSingle(s))
	}
	return out
}

// IndexOf returns the position of the first entry with the given ID, or -1.
func IndexOf(entries []Entry, id string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.ID() == id })
}

func scrollKey(s domain.Status) string {
	if s.EditedAt == nil {
		return s.ID
	}
	return s.ID + s.EditedAt.UTC().Format(time.RFC3339Nano)
}
