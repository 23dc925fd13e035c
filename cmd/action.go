package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-clippy/internal/output"
	"github.com/mj1618/desktop-clippy/internal/platform"
)

// ActionResult is the output of a one-shot input command.
type ActionResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

func printResult(w io.Writer, format output.Format, res ActionResult) error {
	switch format {
	case output.FormatJSON:
		return output.WriteJSON(w, res, false)
	case output.FormatYAML:
		return output.WriteYAML(w, res)
	default:
		_, err := fmt.Fprintln(w, res.Message)
		return err
	}
}

// runAction loads the configured provider, runs fn against it and prints
// the message fn returns.
func runAction(cmd *cobra.Command, action string, fn func(p *platform.Provider) (string, error)) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	msg, err := fn(provider)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), format, ActionResult{OK: true, Action: action, Message: msg})
}

func requireInputter(p *platform.Provider) (platform.Inputter, error) {
	if p.Inputter == nil {
		return nil, fmt.Errorf("input simulation not available on this platform")
	}
	return p.Inputter, nil
}
