package play

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"
	"github.com/tubejay/tubejay/player/engine"
	"github.com/tubejay/tubejay/player/fallback"
	"github.com/tubejay/tubejay/player/playlist"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	counterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("238"))
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type tickMsg time.Time

type indexChangeMsg struct {
	index int
}

type shuffleRequestMsg struct{}

type trackBoundMsg struct{}

type playlistReloadedMsg struct {
	tracks []playlist.Track
}

type model struct {
	path   string
	tracks []playlist.Track
	index  int // currently selected (bound) track
	cursor int

	eng      *engine.Engine
	snap     engine.Snapshot
	resolver fallback.Resolver

	lastStatus engine.Status
	statusMsg  string
	width      int
	height     int
}

func newModel(path string, tracks []playlist.Track, startIndex int, eng *engine.Engine) model {
	return model{
		path:   path,
		tracks: tracks,
		index:  startIndex,
		cursor: startIndex,
		eng:    eng,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		watchPlaylistCmd(m.path),
		bindTrackCmd(m.eng, m.tracks[m.index], m.index, len(m.tracks)),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// bindTrackCmd loads a track off the UI loop; session creation can take a
// few seconds when the player is slow to come up.
func bindTrackCmd(eng *engine.Engine, track playlist.Track, index, total int) tea.Cmd {
	return func() tea.Msg {
		eng.Load(track, index, total)
		return trackBoundMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.snap = m.eng.Snapshot()
		if m.snap.Status == engine.StatusUnplayable && m.lastStatus != engine.StatusUnplayable {
			_ = beeep.Notify("tubejay", "Cannot play: "+m.snap.Track.Display(), "")
		}
		m.lastStatus = m.snap.Status
		return m, tickCmd()

	case indexChangeMsg:
		if msg.index < 0 || msg.index >= len(m.tracks) {
			return m, nil
		}
		m.index = msg.index
		m.cursor = msg.index
		m.statusMsg = ""
		return m, bindTrackCmd(m.eng, m.tracks[msg.index], msg.index, len(m.tracks))

	case shuffleRequestMsg:
		m = m.shufflePlaylist()
		return m, nil

	case trackBoundMsg:
		m.snap = m.eng.Snapshot()
		return m, nil

	case playlistReloadedMsg:
		return m.applyReload(msg.tracks)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor != m.index {
			return m, func() tea.Msg { return indexChangeMsg{index: m.cursor} }
		}

	case " ":
		m.eng.TogglePlayPause()
	case "n":
		if !m.eng.Next() {
			m.statusMsg = "Already at the last track"
		}
	case "p":
		if !m.eng.Previous() {
			m.statusMsg = "Already at the first track"
		}
	case "s":
		if m.snap.CanShuffle {
			m.eng.Shuffle()
		}
	case "left":
		m.eng.SeekBy(-5)
	case "right":
		m.eng.SeekBy(5)
	case "+", "=":
		m.eng.AdjustVolume(5)
	case "-":
		m.eng.AdjustVolume(-5)
	case "m":
		m.eng.ToggleMute()

	case "1", "2", "3":
		if m.snap.Status != engine.StatusUnplayable {
			break
		}
		track := m.tracks[m.index]
		switch msg.String() {
		case "1":
			if err := m.resolver.Watch(track); err != nil {
				m.statusMsg = "Could not open browser: " + err.Error()
			} else {
				m.statusMsg = "Opened in browser"
			}
		case "2":
			if err := m.resolver.Search(track); err != nil {
				m.statusMsg = "Could not open browser: " + err.Error()
			} else {
				m.statusMsg = "Opened search in browser"
			}
		case "3":
			if !m.eng.Next() {
				m.statusMsg = "No next track to skip to"
			}
		}
	}

	return m, nil
}

// shufflePlaylist reorders the host-owned playlist, keeping the bound
// track where the shuffle puts it. The engine only learns the new index.
func (m model) shufflePlaylist() model {
	if len(m.tracks) < 2 {
		return m
	}
	current := m.tracks[m.index]

	shuffled := make([]playlist.Track, len(m.tracks))
	copy(shuffled, m.tracks)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	m.tracks = shuffled
	for i, t := range m.tracks {
		if t == current {
			m.index = i
			break
		}
	}
	m.cursor = m.index
	m.eng.UpdatePlaylist(m.index, len(m.tracks))
	m.statusMsg = "Playlist shuffled"
	return m
}

// applyReload swaps in a changed playlist file. The bound track survives
// the reload when it is still present; otherwise the nearest valid index
// is rebound.
func (m model) applyReload(tracks []playlist.Track) (tea.Model, tea.Cmd) {
	if len(tracks) == 0 {
		return m, watchPlaylistCmd(m.path)
	}

	bound := m.tracks[m.index]
	m.tracks = tracks
	m.statusMsg = "Playlist reloaded"

	for i, t := range m.tracks {
		if t.URL == bound.URL {
			m.index = i
			m.cursor = playlist.ClampIndex(m.cursor, len(m.tracks))
			m.eng.UpdatePlaylist(i, len(m.tracks))
			return m, watchPlaylistCmd(m.path)
		}
	}

	m.index = playlist.ClampIndex(m.index, len(m.tracks))
	m.cursor = m.index
	return m, tea.Batch(
		bindTrackCmd(m.eng, m.tracks[m.index], m.index, len(m.tracks)),
		watchPlaylistCmd(m.path),
	)
}

func (m model) View() string {
	var b strings.Builder

	// Header: name + position counter, always visible and accurate
	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render("tubejay"))
	b.WriteString(counterStyle.Render(fmt.Sprintf("  %s  [%d/%d]", m.path, m.index+1, len(m.tracks))))
	b.WriteString("\n\n")

	m.renderTrackList(&b)
	b.WriteString("\n")

	if m.snap.Status == engine.StatusUnplayable {
		m.renderFallbackPanel(&b)
	} else {
		m.renderPlayerBar(&b)
	}

	if m.statusMsg != "" {
		b.WriteString("\n  ")
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n  ")
	help := "space play/pause • n/p next/prev • ←/→ seek • +/- vol • m mute • enter select • q quit"
	if m.snap.CanShuffle {
		help = "space play/pause • n/p next/prev • s shuffle • ←/→ seek • +/- vol • m mute • q quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m model) renderTrackList(b *strings.Builder) {
	visible := m.height - 12
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}

	maxTitle := m.width - 14
	if maxTitle < 20 {
		maxTitle = 20
	}

	for i := offset; i < len(m.tracks) && i < offset+visible; i++ {
		track := m.tracks[i]

		marker := "  "
		if i == m.index {
			marker = "▶ "
		}
		line := fmt.Sprintf(" %s%3d  %s", marker, i+1, runewidth.Truncate(track.Display(), maxTitle, "…"))

		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case i == m.index:
			line = currentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m model) renderPlayerBar(b *strings.Builder) {
	icon := statusIcon(m.snap.Status)
	b.WriteString(fmt.Sprintf("  %s %s\n", icon, m.snap.Track.Display()))

	barWidth := m.width - 26
	if barWidth < 10 {
		barWidth = 10
	}
	b.WriteString(fmt.Sprintf("  %s %s / %s  %s\n",
		progressBar(barWidth, m.snap.Position, m.snap.Duration),
		formatTime(m.snap.Position),
		formatTime(m.snap.Duration),
		volumeLabel(m.snap),
	))
}

func (m model) renderFallbackPanel(b *strings.Builder) {
	var p strings.Builder
	p.WriteString(errorStyle.Render("Cannot play this track"))
	p.WriteString("\n")
	p.WriteString(m.snap.Reason)
	p.WriteString("\n\n")
	p.WriteString("1  open the original link in your browser\n")
	p.WriteString("2  search for it manually\n")
	p.WriteString("3  skip to the next track")
	b.WriteString(panelStyle.Render(p.String()))
	b.WriteString("\n")
}

func statusIcon(s engine.Status) string {
	switch s {
	case engine.StatusPlaying:
		return "▶"
	case engine.StatusPaused:
		return "❚❚"
	case engine.StatusResolving, engine.StatusBuffering:
		return "…"
	case engine.StatusEnded:
		return "◼"
	default:
		return " "
	}
}

func progressBar(width int, position, duration float64) string {
	filled := 0
	if duration > 0 {
		filled = int(position / duration * float64(width))
		if filled > width {
			filled = width
		}
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func volumeLabel(s engine.Snapshot) string {
	if s.Muted {
		return "muted"
	}
	return fmt.Sprintf("vol %d%%", s.Volume)
}

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	min := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}
