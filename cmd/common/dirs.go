package common

import (
	"os"
	"path/filepath"
)

func ConfigDir() string {
	return filepath.Join(configHome(), "tubejay")
}

func StateDir() string {
	return filepath.Join(stateHome(), "tubejay")
}

// PrefsPath is the durable slot for the playback preferences record.
func PrefsPath() string {
	return filepath.Join(ConfigDir(), "prefs.json")
}

// LogPath is where the TUI routes its log output, keeping the alt screen
// clean.
func LogPath() string {
	return filepath.Join(StateDir(), "tubejay.log")
}

// https://specifications.freedesktop.org/basedir/latest/#variables
func configHome() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return dir
}

func stateHome() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return dir
}
