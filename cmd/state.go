package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/logging"
	"github.com/mj1618/desktop-clippy/internal/output"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print one desktop snapshot",
	Long: `Capture the desktop once and print the focused app, running apps and the
focused window's interactive, informative and scrollable elements. This is
the same report the State-Tool returns to agents.`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().Bool("vision", false, "Also capture a screenshot")
	stateCmd.Flags().String("screenshot-out", "", "Write the screenshot PNG to this file (implies --vision)")
}

func runState(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	vision, _ := cmd.Flags().GetBool("vision")
	screenshotOut, _ := cmd.Flags().GetString("screenshot-out")
	if screenshotOut != "" {
		vision = true
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
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
	state := snapshots.CaptureState(vision)

	if screenshotOut != "" {
		if !state.HasScreenshot() {
			return fmt.Errorf("screen capture failed; nothing written to %s", screenshotOut)
		}
		if err := os.WriteFile(screenshotOut, state.Screenshot, 0o644); err != nil {
			return fmt.Errorf("writing screenshot: %w", err)
		}
	}
	return output.WriteState(cmd.OutOrStdout(), state, format)
}
