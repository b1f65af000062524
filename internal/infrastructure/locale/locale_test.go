package locale

import (
	"testing"
	"time"
)

func TestLongDate(t *testing.T) {
	date := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		tag  string
		want string
	}{
		{"en", "Wednesday, 25/02/2026"},
		{"fr", "mercredi, 25/02/2026"},
		{"ar", "الأربعاء, 25/02/2026"},
		{"xx", "mercredi, 25/02/2026"}, // unknown falls back to fr
	}

	for _, tt := range tests {
		if got := New(tt.tag).LongDate(date); got != tt.want {
			t.Errorf("LongDate(%s) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, tag := range []string{"en", "fr", "ar"} {
		if !Supported(tag) {
			t.Errorf("Supported(%s) = false", tag)
		}
	}
	if Supported("de") {
		t.Error("Supported(de) = true")
	}
}
