package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/logging"
	"github.com/mj1618/desktop-clippy/internal/server"
	"github.com/mj1618/desktop-clippy/internal/version"
	"github.com/mj1618/desktop-clippy/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol (MCP) server exposing the desktop tools.

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-clippy serve
  desktop-clippy serve --transport streamable-http --port 8000
  desktop-clippy serve --config clippy.yaml --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", string(config.TransportStdio), "Transport: stdio, streamable-http")
	serveCmd.Flags().String("host", "127.0.0.1", "HTTP host for streamable-http transport")
	serveCmd.Flags().Int("port", 8000, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("endpoint", "/mcp", "HTTP path of the MCP endpoint")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	snapshots := desktop.NewSnapshotterFromProvider(provider, desktop.Options{
		Scale:    cfg.Vision.Scale,
		Annotate: cfg.Vision.Annotate,
	}, logger)
	srv := server.New(cfg, provider, snapshots, web.NewRodScraper(logger), logger)

	printBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return fmt.Errorf("serving %s: %w", cfg.Server.Transport, err)
	}
	logger.Info("desktop-clippy stopped")
	return nil
}

// applyServeFlags overrides cfg with the flags given on the command line.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("transport") {
		v, _ := flags.GetString("transport")
		cfg.Server.Transport = config.TransportType(v)
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("endpoint") {
		cfg.Server.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	return cfg.Validate()
}

// printBanner writes to stderr: stdout carries the stdio transport.
func printBanner(cfg *config.Config) {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Fprintf(os.Stderr, "Desktop Clippy %s\n", version.Version)
	fmt.Fprintf(os.Stderr, "   Transport: %s\n", cfg.Server.Transport)
	if cfg.Server.Transport == config.TransportHTTP {
		fmt.Fprintf(os.Stderr, "   Endpoint:  http://%s%s\n", cfg.ServerAddress(), cfg.Server.Endpoint)
	}
	shell := color.GreenString("enabled")
	if !cfg.Shell.Enabled {
		shell = color.YellowString("disabled")
	}
	fmt.Fprintf(os.Stderr, "   Shell:     %s\n", shell)
	fmt.Fprintln(os.Stderr)
}
