package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text or press a key combination",
	Long:  "Type text into the focused element, or press a key combination with --key (e.g. \"ctrl+c\", \"alt+tab\", \"enter\").",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to positional arg)")
	typeCmd.Flags().String("key", "", "Key or key combination joined with +")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	key, _ := cmd.Flags().GetString("key")
	if len(args) > 0 {
		text = args[0]
	}
	if text == "" && key == "" {
		return fmt.Errorf("specify text to type or --key")
	}
	if text != "" && key != "" {
		return fmt.Errorf("specify either text or --key, not both")
	}

	return runAction(cmd, "type", func(p *platform.Provider) (string, error) {
		in, err := requireInputter(p)
		if err != nil {
			return "", err
		}
		if key != "" {
			keys := strings.Split(key, "+")
			if len(keys) == 1 {
				err = in.PressKey(key)
			} else {
				err = in.KeyCombo(keys)
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Pressed %s.", key), nil
		}
		if err := in.TypeText(text); err != nil {
			return "", err
		}
		return fmt.Sprintf("Typed %q.", text), nil
	})
}
