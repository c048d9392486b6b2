package cli

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../internal/cli.version=v1.2.3".
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print hrconsole version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	},
}

func versionString() string {
	v := version
	commit := ""
	if info, ok := rdebug.ReadBuildInfo(); ok {
		if v == "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		}
	}
	if v == "" {
		v = "(devel)"
	}

	out := fmt.Sprintf("hrconsole %s %s %s/%s", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if commit != "" {
		out += " " + commit
	}
	return out
}
