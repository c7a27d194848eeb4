package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X github.com/abhisek/adaptiq/cmd.version=v1.2.3".
var version = ""

// buildVersion prefers the stamped version, then the module version
// recorded by `go install`, then the VCS revision.
func buildVersion(info *debug.BuildInfo) string {
	if version != "" {
		return version
	}
	if info == nil {
		return "(devel)"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return "(devel) " + s.Value[:12]
		}
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the adaptiq version",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "adaptiq %s (%s %s/%s)\n",
			buildVersion(info), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
