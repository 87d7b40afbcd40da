package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Go       string `json:"go"`
}

// readBuildInfo falls back to module and VCS data when no version was linked in.
func readBuildInfo() buildInfo {
	info := buildInfo{Version: version, Go: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "(devel)" && bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			info.Revision = s.Value[:7]
		}
	}
	return info
}

func printVersion(w io.Writer, info buildInfo, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(info)
	}
	line := "streaks " + info.Version
	if info.Revision != "" {
		line += " (" + info.Revision + ")"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", line, info.Go)
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return printVersion(cmd.OutOrStdout(), readBuildInfo(), asJSON)
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print build details as JSON")
}
