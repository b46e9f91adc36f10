package tui

import (
	"strings"
	"testing"
)

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}
	for _, tc := range tests {
		if got := clampByte(tc.in); got != tc.want {
			t.Errorf("clampByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRenderShimmerLogoContainsLetters(t *testing.T) {
	for _, frame := range []int{0, 17, 1000} {
		logo := renderShimmerLogo(frame)
		for _, r := range "GHFINDER" {
			if !strings.ContainsRune(logo, r) {
				t.Errorf("frame %d: logo missing %q: %q", frame, r, logo)
			}
		}
	}
}

func TestHelpViewMarksCursor(t *testing.T) {
	for i, item := range helpItems {
		view := helpView(i)
		if !strings.Contains(view, "> ") {
			t.Errorf("cursor %d: no cursor marker", i)
		}
		if !strings.Contains(view, item.desc) {
			t.Errorf("cursor %d: missing %q", i, item.desc)
		}
	}
}
