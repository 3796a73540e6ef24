package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shkcodes/inkwell"
	"github.com/shkcodes/inkwell/config"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site descriptor over HTTP",
	Long: `serve builds the descriptor and exposes it through a JSON API. With
watching enabled (the default) the site rebuilds automatically when content,
configuration, or theme files change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides the configuration)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild when content, config, or theme files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", cfgFile, err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	site, err := inkwell.New(cfg)
	if err != nil {
		return err
	}
	defer site.Close()

	return inkwell.NewServer(site, inkwell.WithWatch(serveWatch)).Start(ctx)
}
