package play

import (
	"testing"

	"github.com/tubejay/tubejay/player/engine"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"sub-minute", 42.7, "0:42"},
		{"minutes", 212, "3:32"},
		{"over an hour", 3725, "1:02:05"},
		{"negative clamps to zero", -3, "0:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTime(tc.seconds); got != tc.want {
				t.Errorf("formatTime(%v) = %q, want %q", tc.seconds, got, tc.want)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name               string
		position, duration float64
		want               string
	}{
		{"empty at start", 0, 100, "[----------]"},
		{"half", 50, 100, "[=====-----]"},
		{"full", 100, 100, "[==========]"},
		{"past the end clamps", 120, 100, "[==========]"},
		{"unknown duration", 30, 0, "[----------]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := progressBar(10, tc.position, tc.duration); got != tc.want {
				t.Errorf("progressBar(10, %v, %v) = %q, want %q", tc.position, tc.duration, got, tc.want)
			}
		})
	}
}

func TestVolumeLabel(t *testing.T) {
	if got := volumeLabel(engine.Snapshot{Volume: 70}); got != "vol 70%" {
		t.Errorf("volumeLabel = %q, want %q", got, "vol 70%")
	}
	if got := volumeLabel(engine.Snapshot{Volume: 70, Muted: true}); got != "muted" {
		t.Errorf("volumeLabel muted = %q, want %q", got, "muted")
	}
}
