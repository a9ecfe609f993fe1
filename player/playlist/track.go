package playlist

// Track is one playable item. Tracks are owned by the host and never
// mutated by the playback engine.
type Track struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	URL        string `json:"url"`
	Collection string `json:"collection,omitempty"`
}

// Display returns a human readable "Artist - Title" label for the track,
// falling back to whichever part is present.
func (t Track) Display() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	case t.Artist != "":
		return t.Artist
	default:
		return t.URL
	}
}

// Playlist is the ordered queue plus the current selection. It is owned by
// the host; the engine only ever reads it.
type Playlist struct {
	Tracks       []Track
	CurrentIndex int
}

// Current returns the currently selected track, or false if the playlist is
// empty or the index is out of range.
func (p Playlist) Current() (Track, bool) {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Tracks) {
		return Track{}, false
	}
	return p.Tracks[p.CurrentIndex], true
}

// ClampIndex returns idx unchanged when it is a valid position, otherwise
// the nearest valid position (0 for an empty playlist).
func ClampIndex(idx, length int) int {
	if length <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}
