package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/terminalthread/domain"
)

func sample() []Entry {
	return Wrap([]domain.Status{
		status("A", ""),
		status("B", "A"),
		status("C", "B"),
		status("D", "A"),
	})
}

func TestCollapse_FoldsRunBetweenAnchors(t *testing.T) {
	got, ok := Collapse(sample(), "A", "D")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "D"}, ids(got))

	c, isCollapsed := got[1].(Collapsed)
	require.True(t, isCollapsed)
	require.Equal(t, "B", c.Head().ID)
	require.Equal(t, "A", c.Anchor())
	require.Equal(t, 2, c.Count())
	require.Equal(t, []string{"B", "C"}, ids(c.Folded()))
}

func TestCollapse_NoOps(t *testing.T) {
	entries := sample()
	cases := []struct {
		name       string
		begin, end string
	}{
		{name: "adjacent", begin: "C", end: "D"},
		{name: "same", begin: "B", end: "B"},
		{name: "reversed", begin: "D", end: "A"},
		{name: "missing begin", begin: "zz", end: "D"},
		{name: "missing end", begin: "A", end: "zz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Collapse(entries, tc.begin, tc.end)
			require.False(t, ok)
			require.Equal(t, entries, got)
		})
	}
}

func TestCollapse_DoesNotMutateInput(t *testing.T) {
	entries := sample()
	_, ok := Collapse(entries, "A", "D")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "C", "D"}, ids(entries))
}

func TestCollapseThenExpand_RoundTrip(t *testing.T) {
	entries := sample()
	collapsed, ok := Collapse(entries, "A", "D")
	require.True(t, ok)

	c := collapsed[1].(Collapsed)
	expanded, hint, ok := Expand(collapsed, c.Folded())
	require.True(t, ok)
	require.Equal(t, entries, expanded)
	require.Equal(t, ScrollHint{Key: "D", ForUser: true}, hint)
}

func TestCollapse_RecollapseMergesSameAnchor(t *testing.T) {
	entries := Wrap([]domain.Status{
		status("A", ""),
		status("B", "A"),
		status("C", "B"),
		status("E", "A"),
		status("D", ""),
	})
	inner, ok := Collapse(entries, "A", "E")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "E", "D"}, ids(inner))

	outer, ok := Collapse(inner, "A", "D")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "D"}, ids(outer))

	c := outer[1].(Collapsed)
	require.Equal(t, 3, c.Count())
	require.Equal(t, []string{"B", "C", "E"}, ids(c.Folded()))
	for _, f := range c.Folded() {
		_, nested := f.(Collapsed)
		require.False(t, nested)
	}

	// Re-collapsing only the placeholder must not wrap it again.
	again, ok := Collapse(outer, "A", "D")
	require.True(t, ok)
	c2 := again[1].(Collapsed)
	require.Equal(t, 3, c2.Count())
	require.Equal(t, []string{"B", "C", "E"}, ids(c2.Folded()))
}

func TestCollapse_KeepsNestingForOtherAnchors(t *testing.T) {
	entries := Wrap([]domain.Status{
		status("A", ""),
		status("B", "A"),
		status("C", "B"),
		status("C2", "C"),
		status("E", "A"),
		status("D", ""),
	})
	inner, ok := Collapse(entries, "B", "E")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "C", "E", "D"}, ids(inner))

	outer, ok := Collapse(inner, "A", "D")
	require.True(t, ok)
	c := outer[1].(Collapsed)
	require.Equal(t, 4, c.Count())
	require.Equal(t, []string{"B", "C", "E"}, ids(c.Folded()))
	nested, isCollapsed := c.Folded()[1].(Collapsed)
	require.True(t, isCollapsed)
	require.Equal(t, 2, nested.Count())

	// Expanding level by level restores the original order.
	step1, _, ok := Expand(outer, c.Folded())
	require.True(t, ok)
	step2, hint, ok := Expand(step1, nested.Folded())
	require.True(t, ok)
	require.Equal(t, entries, step2)
	require.Equal(t, "E", hint.Key)
}

func TestExpand_NoOps(t *testing.T) {
	entries := sample()

	got, hint, ok := Expand(entries, nil)
	require.False(t, ok)
	require.Equal(t, entries, got)
	require.Equal(t, ScrollHint{}, hint)

	got, _, ok = Expand(entries, Wrap([]domain.Status{status("nope", "")}))
	require.False(t, ok)
	require.Equal(t, entries, got)
}

func TestExpand_AtEndHasNoScrollHint(t *testing.T) {
	entries := Wrap([]domain.Status{status("A", ""), status("B", "A"), status("C", "B"), status("Z", "")})
	collapsed, ok := Collapse(entries, "A", "Z")
	require.True(t, ok)
	tail := collapsed[:2]

	got, hint, ok := Expand(tail, tail[1].(Collapsed).Folded())
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "C"}, ids(got))
	require.Equal(t, ScrollHint{}, hint)
}

func TestScrollKey_IncludesEditTime(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 8, time.UTC)
	plain := NewSingle(status("s1", ""))
	edited := NewSingle(editedAt(status("s1", ""), at))

	require.Equal(t, "s1", plain.ScrollKey())
	require.Equal(t, "s12025-03-04T05:06:07.000000008Z", edited.ScrollKey())
	require.Equal(t, plain.ID(), edited.ID())

	got, ok := Collapse(Wrap([]domain.Status{status("p", ""), edited.Status, status("q", "")}), "p", "q")
	require.True(t, ok)
	require.Equal(t, edited.ScrollKey(), got[1].ScrollKey())
}
