package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shkcodes/inkwell"
	"github.com/shkcodes/inkwell/config"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site and export its descriptor to disk",
	Long: `build indexes the content directory, resolves the theme, assembles the
site descriptor, and writes site.json and theme.json into the output
directory for static frontends to pick up.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory for the exported descriptor")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", cfgFile, err)
	}

	site, err := inkwell.New(cfg)
	if err != nil {
		return err
	}
	defer site.Close()

	if err := site.Export(cmd.Context(), buildOut); err != nil {
		return err
	}
	fmt.Printf("Exported descriptor to %s\n", buildOut)
	return nil
}
