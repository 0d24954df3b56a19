package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "austra",
	Short: "AUSTRA expression-language tools",
	Long: `austra tokenizes, parses, and type-checks AUSTRA expressions -
the embeddable numeric expression language described by its bindings
table (vectors, matrices, series, dates, and the functions over them).

It is a debugging and exploration tool around the same internal/
packages a host embeds via pkg/austra; it does not run a standalone
program the way a general-purpose scripting CLI would.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
