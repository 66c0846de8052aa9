package suggest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlag(t *testing.T) {
	valid := []string{"--min-price", "--max-price", "--min-stock", "--max-stock", "--category", "--search"}

	tests := []struct {
		unknown string
		want    []string
	}{
		{"--min-prise", []string{"--min-price", "--max-price"}},
		{"categroy", []string{"--category"}},
		{"--zzzzzzzzzzzzzzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			got := Flag(tt.unknown, valid)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flag(%q) mismatch (-want +got):\n%s", tt.unknown, diff)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	presets := []string{"all", "0-100", "100-500", "500-1000", "1000+"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"100-50", "100-500"},
		{"1000", "1000+"},
		{"ALL", "all"},
		{"  ", ""},
		{"cheap", ""},
	}
	for _, tt := range tests {
		if got := Closest(tt.unknown, presets); got != tt.want {
			t.Errorf("Closest(%q) = %q, want %q", tt.unknown, got, tt.want)
		}
	}
}

func TestGetFlagHint(t *testing.T) {
	if got := GetFlagHint("--QTY"); got != "--stock" {
		t.Errorf("GetFlagHint(--QTY) = %q, want --stock", got)
	}
	if got := GetFlagHint("--nothing"); got != "" {
		t.Errorf("GetFlagHint(--nothing) = %q, want empty", got)
	}
}
