package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestRoundTrip(t *testing.T) {
	store := tempStore(t)

	saved := Preferences{Volume: 65, Muted: true, LastIndex: 3, LastPosition: 127.5}
	store.Save(saved)

	if got := store.Load(); got != saved {
		t.Errorf("Load() = %+v, want %+v", got, saved)
	}
}

func TestLoadDefaults(t *testing.T) {
	defaults := Defaults()

	t.Run("missing file", func(t *testing.T) {
		if got := tempStore(t).Load(); got != defaults {
			t.Errorf("Load() = %+v, want defaults %+v", got, defaults)
		}
	})

	t.Run("corrupt JSON", func(t *testing.T) {
		store := tempStore(t)
		if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := store.Load(); got != defaults {
			t.Errorf("Load() = %+v, want defaults %+v", got, defaults)
		}
	})

	t.Run("unreadable path", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "no", "such", "dir", "prefs.json"))
		if got := store.Load(); got != defaults {
			t.Errorf("Load() = %+v, want defaults %+v", got, defaults)
		}
	})
}

func TestLoadClampsStoredValues(t *testing.T) {
	store := tempStore(t)
	data := `{"volume": 250, "muted": false, "lastIndex": -3, "lastPositionSeconds": -1.5}`
	if err := os.WriteFile(store.Path(), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if got.Volume != 100 {
		t.Errorf("Volume = %d, want 100", got.Volume)
	}
	if got.LastIndex != 0 {
		t.Errorf("LastIndex = %d, want 0", got.LastIndex)
	}
	if got.LastPosition != 0 {
		t.Errorf("LastPosition = %v, want 0", got.LastPosition)
	}
}

func TestSaveClamps(t *testing.T) {
	store := tempStore(t)
	store.Save(Preferences{Volume: 300, LastIndex: -1})

	got := store.Load()
	if got.Volume != 100 || got.LastIndex != 0 {
		t.Errorf("Load() after out-of-range Save = %+v", got)
	}
}

func TestSaveSwallowsWriteFailure(t *testing.T) {
	// A directory path cannot be written as a file; Save must not panic
	// and the next Load must fall back to defaults.
	dir := t.TempDir()
	store := NewStore(dir)

	store.Save(Preferences{Volume: 42})

	if got := store.Load(); got != Defaults() {
		t.Errorf("Load() = %+v, want defaults after failed save", got)
	}
}

func TestReset(t *testing.T) {
	store := tempStore(t)
	store.Save(Preferences{Volume: 10})
	store.Reset()

	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("prefs file still exists after Reset: %v", err)
	}

	// Resetting again must be harmless
	store.Reset()
}
