package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"
)

var ErrEmptyPlaylist = errors.New("playlist contains no playable tracks")

// LoadFile reads a playlist file: a JSON array of track objects
// ({"title", "artist", "url", "collection"}). Tracks with a blank URL are
// skipped with a warning rather than failing the whole file.
func LoadFile(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playlist %s: %w", path, err)
	}

	var raw []Track
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing playlist %s: %w", path, err)
	}

	tracks := lo.Filter(raw, func(t Track, i int) bool {
		if strings.TrimSpace(t.URL) == "" {
			slog.Warn("skipping track without URL", "position", i, "title", t.Title)
			return false
		}
		return true
	})

	if len(tracks) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return tracks, nil
}
