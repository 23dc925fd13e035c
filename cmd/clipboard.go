package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Read or write the system clipboard",
}

var clipboardReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Print the current clipboard text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, "clipboard-read", func(p *platform.Provider) (string, error) {
			if p.ClipboardManager == nil {
				return "", fmt.Errorf("clipboard not available on this platform")
			}
			return p.ClipboardManager.ReadText()
		})
	},
}

var clipboardWriteCmd = &cobra.Command{
	Use:   "write <text>",
	Short: "Write text to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, "clipboard-write", func(p *platform.Provider) (string, error) {
			if p.ClipboardManager == nil {
				return "", fmt.Errorf("clipboard not available on this platform")
			}
			if err := p.ClipboardManager.WriteText(args[0]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Copied %q to clipboard", args[0]), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(clipboardCmd)
	clipboardCmd.AddCommand(clipboardReadCmd)
	clipboardCmd.AddCommand(clipboardWriteCmd)
}
