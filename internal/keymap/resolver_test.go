//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
		{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"k", ActionMoveUp},
		{"up", ActionMoveUp},
		{"j", ActionMoveDown},
		{"x", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if result := r.Resolve(tt.key); result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_LaterBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionNextTrack, []string{"n"}, "Next track", "playback"},
		{ActionSelect, []string{"n"}, "Play track", "playlist"},
	})

	if action := r.Resolve("n"); action != ActionSelect {
		t.Errorf("Resolve('n') = %q, want %q", action, ActionSelect)
	}
}

func TestResolver_Help(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionNextTrack, []string{"n", "pgdown", "N"}, "Next track", "playback"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	})

	got := r.Help("playback", "global")
	want := []HelpEntry{
		{"space", "Play/pause"},
		{"n/pgdown", "Next track"},
		{"q/ctrl+c", "Quit"},
	}

	if len(got) != len(want) {
		t.Fatalf("Help() returned %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Help()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestResolver_HelpUnknownContext(t *testing.T) {
	r := NewResolver(Bindings)

	if got := r.Help("unknown"); len(got) != 0 {
		t.Errorf("Help(unknown) = %v, want empty", got)
	}
	if got := r.Help(); len(got) != 0 {
		t.Errorf("Help() = %v, want empty", got)
	}
}

func TestResolver_WithGlobalBindings(t *testing.T) {
	r := NewResolver(Bindings)

	if action := r.Resolve("q"); action != ActionQuit {
		t.Errorf("Resolve('q') = %q, want %q", action, ActionQuit)
	}
	if action := r.Resolve("tab"); action != ActionSwitchFocus {
		t.Errorf("Resolve('tab') = %q, want %q", action, ActionSwitchFocus)
	}
	if action := r.Resolve(" "); action != ActionPlayPause {
		t.Errorf("Resolve(' ') = %q, want %q", action, ActionPlayPause)
	}

	// every context contributes to the help panel
	for _, ctx := range []string{"global", "playback", "playlist"} {
		if len(r.Help(ctx)) == 0 {
			t.Errorf("Help(%q) is empty", ctx)
		}
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver([]Binding{})

	if action := r.Resolve("q"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}
	if got := r.Help("global"); got != nil {
		t.Errorf("Help on empty resolver should return nil, got %v", got)
	}
}

func TestKeyLabel(t *testing.T) {
	if got := KeyLabel(" "); got != "space" {
		t.Errorf("KeyLabel(space) = %q, want %q", got, "space")
	}
	if got := KeyLabel("ctrl+d"); got != "ctrl+d" {
		t.Errorf("KeyLabel(ctrl+d) = %q, want unchanged", got)
	}
}
