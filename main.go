package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
	"github.com/tubejay/tubejay/cmd/id"
	"github.com/tubejay/tubejay/cmd/play"
	"github.com/tubejay/tubejay/cmd/prefs"
	"github.com/tubejay/tubejay/cmd/tracks"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "tubejay",
		Short:   "A terminal jukebox for YouTube playlists",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			tracks.Cmd(),
			id.Cmd(),
			prefs.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
