// Package fallback offers the recovery affordances for unplayable tracks:
// open the original link externally, open a manual search, or skip ahead.
// A confirmed-broken link is never silently retried.
package fallback

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/tubejay/tubejay/player/playlist"
)

const searchBaseURL = "https://www.youtube.com/results?search_query="

// Option is one of the three recovery affordances.
type Option int

const (
	WatchExternally Option = iota // open the track's original URL
	SearchManually                // open a search built from title + artist
	SkipToNext                    // advance the playlist
)

func (o Option) String() string {
	switch o {
	case WatchExternally:
		return "watch externally"
	case SearchManually:
		return "search manually"
	case SkipToNext:
		return "skip to next"
	default:
		return "unknown"
	}
}

// Options lists the affordances in presentation order. All three are
// always offered.
func Options() []Option {
	return []Option{WatchExternally, SearchManually, SkipToNext}
}

// SearchURL builds a search link from the track's title and artist.
func SearchURL(t playlist.Track) string {
	query := strings.TrimSpace(strings.TrimSpace(t.Title) + " " + strings.TrimSpace(t.Artist))
	return searchBaseURL + url.QueryEscape(query)
}

// Resolver opens recovery links in an external context. The zero value
// uses the platform browser.
type Resolver struct {
	// OpenURL overrides how links are opened. Injectable for tests.
	OpenURL func(url string) error
}

// Watch opens the track's original URL externally.
func (r Resolver) Watch(t playlist.Track) error {
	return r.open(t.URL)
}

// Search opens a manual search for the track externally.
func (r Resolver) Search(t playlist.Track) error {
	return r.open(SearchURL(t))
}

func (r Resolver) open(target string) error {
	if r.OpenURL != nil {
		return r.OpenURL(target)
	}
	return openBrowser(target)
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
