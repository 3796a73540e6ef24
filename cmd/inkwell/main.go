package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shkcodes/inkwell/internal/log"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Data-first blog site kit",
	Long: `inkwell assembles a blog site from a declarative configuration: it
resolves the theme by deep-merging override layers onto a preset, indexes
markdown content, and produces a single descriptor a frontend can consume.
The descriptor can be exported to JSON files or served over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		format := logFormat
		// serve is long-running; unless asked otherwise it logs JSON.
		if f := cmd.Flag("log-format"); f != nil && !f.Changed && cmd.Name() == "serve" {
			format = "json"
		}
		log.Configure(log.Config{Level: logLevel, Format: format})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the inkwell version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("inkwell %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "site configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json; serve defaults to json)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
