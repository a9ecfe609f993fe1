package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlist.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePlaylist(t, `[
		{"title": "First", "artist": "Band", "url": "https://youtu.be/dQw4w9WgXcQ", "collection": "Vol 1"},
		{"title": "Second", "artist": "Band", "url": "https://youtu.be/aaaaaaaaaaa"}
	]`)

	tracks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Title != "First" || tracks[0].Collection != "Vol 1" {
		t.Errorf("unexpected first track: %+v", tracks[0])
	}
}

func TestLoadFileSkipsBlankURLs(t *testing.T) {
	path := writePlaylist(t, `[
		{"title": "Playable", "url": "https://youtu.be/dQw4w9WgXcQ"},
		{"title": "No URL", "url": "  "}
	]`)

	tracks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Playable" {
		t.Errorf("got %+v, want only the playable track", tracks)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("corrupt JSON", func(t *testing.T) {
		path := writePlaylist(t, `{"this is": "not an array"`)
		if _, err := LoadFile(path); err == nil {
			t.Error("expected error for corrupt JSON")
		}
	})

	t.Run("no playable tracks", func(t *testing.T) {
		path := writePlaylist(t, `[{"title": "No URL"}]`)
		_, err := LoadFile(path)
		if !errors.Is(err, ErrEmptyPlaylist) {
			t.Errorf("got %v, want ErrEmptyPlaylist", err)
		}
	})
}
