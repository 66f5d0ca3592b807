package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestBlend(t *testing.T) {
	from, to := lipgloss.Color("#000000"), lipgloss.Color("#ffffff")

	tests := []struct {
		name string
		size int
		want int
	}{
		{"none", 0, 0},
		{"single", 1, 1},
		{"many", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Blend(tt.size, from, to)); got != tt.want {
				t.Errorf("len(Blend(%d)) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}

	colors := Blend(5, from, to)
	if colors[0] != from {
		t.Errorf("first color = %q, want %q", colors[0], from)
	}
	if colors[4] != to {
		t.Errorf("last color = %q, want %q", colors[4], to)
	}
}

func TestBlend_ANSIColorFallsBack(t *testing.T) {
	colors := Blend(2, lipgloss.Color("240"), lipgloss.Color("240"))
	if colors[0] != "#808080" {
		t.Errorf("fallback color = %q, want #808080", colors[0])
	}
}

func TestApplyBoldGradient_KeepsText(t *testing.T) {
	for _, text := range []string{"", "x", "Now playing", "♫ café"} {
		got := ansi.Strip(ApplyBoldGradient(text, T().Accent, T().AccentEnd))
		if got != text {
			t.Errorf("ApplyBoldGradient(%q) stripped = %q", text, got)
		}
	}
}
