package common

import (
	"path/filepath"
	"testing"
)

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	got := ConfigDir()
	want := filepath.Join("/tmp/xdg-config", "tubejay")
	if got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestPrefsPathUnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	got := PrefsPath()
	want := filepath.Join("/tmp/xdg-config", "tubejay", "prefs.json")
	if got != want {
		t.Errorf("PrefsPath() = %q, want %q", got, want)
	}
}

func TestStateDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/tmp/fakehome")

	got := StateDir()
	want := filepath.Join("/tmp/fakehome", ".local", "state", "tubejay")
	if got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}
