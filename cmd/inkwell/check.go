package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/shkcodes/inkwell/config"
	"github.com/shkcodes/inkwell/content"
	"github.com/shkcodes/inkwell/theme"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the site without building it",
	Long: `check loads the configuration, resolves the theme, and parses every
article, reporting all problems it finds. It never touches the content
index, so it is safe to run against a live site.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var problems []error

	cfg, err := config.Load(cfgFile)
	if err != nil {
		// Without a loadable configuration there is nothing further to check.
		return err
	}
	if err := cfg.Validate(); err != nil {
		problems = append(problems, err)
	}

	base, err := theme.Preset(cfg.Theme.Preset)
	if err != nil {
		problems = append(problems, err)
	}
	if cfg.Theme.Path != "" {
		if _, err := theme.LoadFile(cfg.Theme.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			problems = append(problems, err)
		}
	}

	scanner := content.NewScanner(cfg.Content.Dir, content.WithDrafts(true))
	articles, err := scanner.Scan(cmd.Context())
	if err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("Problem: %v\n", p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	fmt.Printf("Configuration %s is valid\n", cfgFile)
	if base != nil {
		fmt.Printf("Theme preset %q resolves\n", cfg.Theme.Preset)
	}
	fmt.Printf("%d article(s) parse cleanly\n", len(articles))
	return nil
}
