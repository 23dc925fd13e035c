package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll the mouse wheel",
	Args:  cobra.NoArgs,
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("direction", "down", "Scroll direction: up, down, left, right")
	scrollCmd.Flags().Int("amount", 3, "Number of wheel steps")
	scrollCmd.Flags().Int("x", 0, "Move the pointer to this X coordinate first")
	scrollCmd.Flags().Int("y", 0, "Move the pointer to this Y coordinate first")
}

func runScroll(cmd *cobra.Command, args []string) error {
	directionName, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetInt("amount")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	move := cmd.Flags().Changed("x") && cmd.Flags().Changed("y")
	direction, err := platform.ParseScrollDirection(directionName)
	if err != nil {
		return err
	}
	if amount < 1 {
		return fmt.Errorf("--amount must be at least 1, got %d", amount)
	}

	return runAction(cmd, "scroll", func(p *platform.Provider) (string, error) {
		in, err := requireInputter(p)
		if err != nil {
			return "", err
		}
		if move {
			if err := in.MoveMouse(x, y); err != nil {
				return "", err
			}
		}
		if err := in.Scroll(direction, amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Scrolled %s by %d wheel times.", direction, amount), nil
	})
}
