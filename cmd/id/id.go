package id

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/tubejay/tubejay/cmd/common"
	"github.com/tubejay/tubejay/player/playlist"
)

type Params struct {
	URL  string `pos:"true" help:"The video URL to extract the id from."`
	Copy bool   `short:"c" optional:"true" help:"Copy the extracted id to the clipboard."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "id",
		Short:       "Extract the 11-character video id from a YouTube URL",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runID(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "id: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runID(params *Params, stdout *os.File) error {
	videoID, ok := playlist.ExtractVideoID(params.URL)
	if !ok {
		return fmt.Errorf("no video id found in %q", params.URL)
	}

	fmt.Fprintln(stdout, videoID)

	if params.Copy {
		if err := clipboard.WriteAll(videoID); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}
	return nil
}
