package play

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tubejay/tubejay/cmd/common"
	"github.com/tubejay/tubejay/player/adapter"
	"github.com/tubejay/tubejay/player/engine"
	"github.com/tubejay/tubejay/player/playlist"
	"github.com/tubejay/tubejay/player/prefs"
)

type Params struct {
	Playlist string `pos:"true" help:"Path to the playlist file (JSON)."`
	Index    int    `short:"i" optional:"true" help:"Start at this track index (0-based). Overrides the remembered index." default:"-1"`
	Volume   int    `optional:"true" help:"Initial volume 0-100. Overrides the remembered volume." default:"-1"`
	Video    bool   `optional:"true" help:"Show the player's video window instead of audio-only playback."`
	Player   string `optional:"true" help:"Player binary to control." default:"mpv"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Play a playlist of YouTube tracks in the terminal",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runPlay(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runPlay(params *Params) error {
	tracks, err := playlist.LoadFile(params.Playlist)
	if err != nil {
		return err
	}

	closeLog, err := redirectLogToFile()
	if err != nil {
		// Not fatal: playback works without a log file.
		fmt.Fprintf(os.Stderr, "play: logging disabled: %v\n", err)
	} else {
		defer closeLog()
	}

	store := prefs.NewStore(common.PrefsPath())
	stored := store.Load()

	startIndex := playlist.ClampIndex(stored.LastIndex, len(tracks))
	if params.Index >= 0 && params.Index < len(tracks) {
		startIndex = params.Index
	}

	bridge := &uiBridge{}
	eng := engine.New(engine.Config{
		Factory: adapter.NewMPV(
			&adapter.Bootstrap{Binary: params.Player},
			adapter.Options{VideoOutput: params.Video},
		),
		Prefs:         store,
		OnIndexChange: bridge.requestIndex,
		OnShuffle:     bridge.requestShuffle,
	})
	defer eng.Close()

	if params.Volume >= 0 {
		eng.SetVolume(params.Volume)
	}

	m := newModel(params.Playlist, tracks, startIndex, eng)
	p := tea.NewProgram(m, tea.WithAltScreen())
	bridge.attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running player UI: %w", err)
	}
	return nil
}

func redirectLogToFile() (func(), error) {
	logPath := common.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { _ = f.Close() }, nil
}

// uiBridge forwards engine-originated host callbacks into the running
// bubbletea program. The engine calls these from its own goroutines, so
// delivery goes through program.Send rather than touching the model.
type uiBridge struct {
	mu      sync.Mutex
	program *tea.Program
}

func (b *uiBridge) attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

func (b *uiBridge) requestIndex(newIndex int) {
	if p := b.get(); p != nil {
		p.Send(indexChangeMsg{index: newIndex})
	}
}

func (b *uiBridge) requestShuffle() {
	if p := b.get(); p != nil {
		p.Send(shuffleRequestMsg{})
	}
}

func (b *uiBridge) get() *tea.Program {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.program
}
