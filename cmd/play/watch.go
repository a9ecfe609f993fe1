package play

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/tubejay/tubejay/player/playlist"
)

// watchPlaylistCmd watches the playlist file and delivers a reload message
// when it changes. One-shot: the watcher closes after the first useful
// event and Update re-arms it. Watch failures silently disable hot
// reload; playback is unaffected.
func watchPlaylistCmd(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil
		}

		// Watch the directory: editors often replace the file, which
		// drops a watch held on the file itself.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			return nil
		}

		target := filepath.Clean(path)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// Only report complete, parseable playlists; a
				// half-written file waits for the next event.
				tracks, err := playlist.LoadFile(path)
				if err != nil {
					continue
				}
				watcher.Close()
				return playlistReloadedMsg{tracks: tracks}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				watcher.Close()
				return nil
			}
		}
	}
}
