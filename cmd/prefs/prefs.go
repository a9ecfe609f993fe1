package prefs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
	"github.com/tubejay/tubejay/cmd/common"
	playerprefs "github.com/tubejay/tubejay/player/prefs"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "prefs",
		Short: "Inspect or reset the persisted playback preferences",
		SubCmds: []*cobra.Command{
			showCmd(),
			resetCmd(),
		},
	}.ToCobra()
}

func showCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "show",
		Short: "Print the stored playback preferences",
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			store := playerprefs.NewStore(common.PrefsPath())
			data, err := json.MarshalIndent(store.Load(), "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "prefs: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		},
	}.ToCobra()
}

func resetCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "reset",
		Short: "Remove the stored playback preferences",
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			store := playerprefs.NewStore(common.PrefsPath())
			store.Reset()
			fmt.Printf("Removed %s\n", store.Path())
		},
	}.ToCobra()
}
