// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package tracker

import "testing"

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"open", StateOpen},
		{"opened", StateOpen},
		{"closed", StateClosed},
		{"", StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeState(tt.in); got != tt.want {
				t.Errorf("NormalizeState(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
