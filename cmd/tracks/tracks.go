package tracks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/tubejay/tubejay/cmd/common"
	"github.com/tubejay/tubejay/player/playlist"
	"golang.org/x/term"
)

type Params struct {
	Playlist string `pos:"true" help:"Path to the playlist file (JSON)."`
	JSON     bool   `long:"json" optional:"true" help:"Output as JSON instead of a table."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "tracks",
		Short:       "List the tracks of a playlist file",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runTracks(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "tracks: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runTracks(params *Params, stdout *os.File) error {
	tracks, err := playlist.LoadFile(params.Playlist)
	if err != nil {
		return err
	}

	if params.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tracks)
	}

	// Leave room for the fixed columns when truncating titles
	titleWidth := 40
	if term.IsTerminal(int(stdout.Fd())) {
		if w, _, err := term.GetSize(int(stdout.Fd())); err == nil && w > 60 {
			titleWidth = w - 45
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Collection", "Video ID"})

	for i, tr := range tracks {
		videoID, ok := playlist.ExtractVideoID(tr.URL)
		if !ok {
			videoID = "-"
		}
		t.AppendRow(table.Row{
			i + 1,
			runewidth.Truncate(tr.Title, titleWidth, "…"),
			runewidth.Truncate(tr.Artist, 24, "…"),
			tr.Collection,
			videoID,
		})
	}

	t.Render()
	return nil
}
