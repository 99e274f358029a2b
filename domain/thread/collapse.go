package thread

import "slices"

// ScrollHint asks the renderer to keep an entry in view.
type ScrollHint struct {
	Key string
	// ForUser is set when the scroll follows a user action, so the view
	// should keep the user's anchor instead of jumping to the thread top.
	ForUser bool
}

// Collapse folds every entry strictly between beginID and endID into one
// Collapsed placeholder placed right after beginID. It reports false and
// returns entries untouched when either ID is missing or nothing lies
// between them.
//
// A leading Collapsed that was itself anchored at beginID is merged rather
// than nested, so collapsing again after a partial expand stays flat.
func Collapse(entries []Entry, beginID, endID string) ([]Entry, bool) {
	begin := IndexOf(entries, beginID)
	end := IndexOf(entries, endID)
	if begin < 0 || end < 0 || begin+1 >= end {
		return entries, false
	}

	folded := Collapsed{anchor: beginID}
	for i, en := range entries[begin+1 : end] {
		if c, ok := en.(Collapsed); ok && i == 0 && c.anchor == beginID {
			folded.add(c.folded...)
			continue
		}
		folded.add(en)
	}

	out := make([]Entry, 0, len(entries)-(end-begin-1)+1)
	out = append(out, entries[:begin+1]...)
	out = append(out, folded)
	out = append(out, entries[end:]...)
	return out, true
}

// Expand replaces the entry whose ID matches replacement's first entry with
// the whole replacement. The returned hint points at the entry that
// followed the replaced one, if any. Empty or unmatched replacements leave
// entries untouched.
func Expand(entries []Entry, replacement []Entry) ([]Entry, ScrollHint, bool) {
	if len(replacement) == 0 {
		return entries, ScrollHint{}, false
	}
	at := IndexOf(entries, replacement[0].ID())
	if at < 0 {
		return entries, ScrollHint{}, false
	}

	var hint ScrollHint
	if at+1 < len(entries) {
		hint = ScrollHint{Key: entries[at+1].ScrollKey(), ForUser: true}
	}

	out := slices.Clone(entries)
	out = slices.Replace(out, at, at+1, replacement...)
	return out, hint, true
}
