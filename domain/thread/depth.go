package thread

import "github.com/CrestNiraj12/terminalthread/domain"

// Depth describes where a status sits in the reply tree.
type Depth struct {
	// Level is 0 for top-level posts and for posts whose parent was not
	// seen earlier in the same list.
	Level uint
	// JumpUp is set when Level is smaller than the previous status' level.
	JumpUp bool
}

// Depths maps status IDs to their depth. A table is always rebuilt from a
// complete list, never patched.
type Depths map[string]Depth

// ComputeDepths walks statuses in order (ancestors oldest-first, then the
// focused status, then descendants) and records each one's depth.
func ComputeDepths(statuses []domain.Status) Depths {
	depths := make(Depths, len(statuses))
	var last uint
	for _, s := range statuses {
		var level uint
		if s.InReplyToID != "" {
			if parent, ok := depths[s.InReplyToID]; ok {
				level = parent.Level + 1
			}
		}
		depths[s.ID] = Depth{Level: level, JumpUp: last > level}
		last = level
	}
	return depths
}

// Of returns the recorded depth for id; unknown IDs are top-level.
func (d Depths) Of(id string) Depth {
	return d[id]
}
