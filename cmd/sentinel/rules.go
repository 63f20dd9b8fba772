package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ValueSentinel/internal/strategy"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the scoring thresholds and valuation assumptions in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		return writeRules(os.Stdout, engine.Rules())
	},
}

func writeRules(w io.Writer, r strategy.Rules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return enc.Close()
}
