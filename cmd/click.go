package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at screen coordinates",
	Long:  "Click at absolute screen coordinates, as reported by the state command.",
	Args:  cobra.NoArgs,
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "X screen coordinate")
	clickCmd.Flags().Int("y", 0, "Y screen coordinate")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Int("clicks", 1, "Number of clicks (1-3)")
	_ = clickCmd.MarkFlagRequired("x")
	_ = clickCmd.MarkFlagRequired("y")
}

func runClick(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	clicks, _ := cmd.Flags().GetInt("clicks")
	buttonName, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonName)
	if err != nil {
		return err
	}
	if clicks < 1 || clicks > 3 {
		return fmt.Errorf("--clicks must be 1, 2 or 3, got %d", clicks)
	}

	return runAction(cmd, "click", func(p *platform.Provider) (string, error) {
		in, err := requireInputter(p)
		if err != nil {
			return "", err
		}
		if err := in.Click(x, y, button, clicks); err != nil {
			return "", err
		}
		return fmt.Sprintf("Clicked %s x%d at (%d,%d).", button, clicks, x, y), nil
	})
}
