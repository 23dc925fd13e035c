package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag with the left button between two points",
	Args:  cobra.NoArgs,
	RunE:  runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	dragCmd.Flags().Int("from-x", 0, "Start X coordinate")
	dragCmd.Flags().Int("from-y", 0, "Start Y coordinate")
	dragCmd.Flags().Int("to-x", 0, "End X coordinate")
	dragCmd.Flags().Int("to-y", 0, "End Y coordinate")
	for _, name := range []string{"from-x", "from-y", "to-x", "to-y"} {
		_ = dragCmd.MarkFlagRequired(name)
	}
}

func runDrag(cmd *cobra.Command, args []string) error {
	fromX, _ := cmd.Flags().GetInt("from-x")
	fromY, _ := cmd.Flags().GetInt("from-y")
	toX, _ := cmd.Flags().GetInt("to-x")
	toY, _ := cmd.Flags().GetInt("to-y")

	return runAction(cmd, "drag", func(p *platform.Provider) (string, error) {
		in, err := requireInputter(p)
		if err != nil {
			return "", err
		}
		if err := in.Drag(fromX, fromY, toX, toY); err != nil {
			return "", err
		}
		return fmt.Sprintf("Dragged from (%d,%d) to (%d,%d).", fromX, fromY, toX, toY), nil
	})
}
