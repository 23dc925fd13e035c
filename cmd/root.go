package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/output"
	"github.com/mj1618/desktop-clippy/internal/platform"
	"github.com/mj1618/desktop-clippy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-clippy",
	Short: "Operate the Windows desktop for AI agents over MCP",
	Long: `An MCP server that lets AI agents see and operate the Windows desktop:
the focused window's controls, running applications, mouse, keyboard,
clipboard, PowerShell and a headless web scraper.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file with DESKTOP_CLIPPY_* variables (ignored when missing)")
	rootCmd.PersistentFlags().String("format", string(output.FormatText), "Output format: text, yaml, json")
}

// loadConfig reads the .env file, then the config file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newProvider returns the platform backends configured by cfg.
func newProvider(cfg *config.Config) (*platform.Provider, error) {
	return platform.NewProvider(cfg.PlatformInput())
}

func outputFormat(cmd *cobra.Command) (output.Format, error) {
	format, _ := cmd.Flags().GetString("format")
	return output.ParseFormat(format)
}
