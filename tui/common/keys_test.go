package common

import (
	"strings"
	"testing"
)

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.Quit.Keys()) < 2 || km.Quit.Keys()[1] != "ctrl+c" {
		t.Fatalf("expected ctrl+c quit binding")
	}
	if len(km.Collapse.Keys()) == 0 || km.Collapse.Keys()[0] != "c" {
		t.Fatalf("expected c to collapse")
	}
	if len(km.Open.Keys()) == 0 || km.Open.Keys()[0] != "enter" {
		t.Fatalf("expected enter to expand/open")
	}
	if len(km.Back.Keys()) == 0 || km.Back.Keys()[0] != "esc" {
		t.Fatalf("expected esc to go back")
	}
}

func TestKeyMap_HelpLine(t *testing.T) {
	line := strings.Join(DefaultKeyMap().HelpLine(), " • ")
	for _, want := range []string{"c: collapse", "enter: expand/open", "esc: back", "q: quit"} {
		if !strings.Contains(line, want) {
			t.Fatalf("help line %q missing %q", line, want)
		}
	}
}
