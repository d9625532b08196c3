package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gedtree/gedtree/gedtree/document"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Validate a GEDCOM file and report record counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.GetString("file")
		if path == "" {
			return fmt.Errorf("GEDCOM file path is required (use --file or GEDTREE_FILE)")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc, err := document.ParseBytes(data)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}

		counts := struct {
			Individuals int `json:"individuals" yaml:"individuals"`
			Families    int `json:"families" yaml:"families"`
			Sources     int `json:"sources" yaml:"sources"`
		}{
			Individuals: len(doc.Individuals()),
			Families:    len(doc.Families()),
			Sources:     len(doc.Sources()),
		}

		if cfg.GetString("format") == "text" {
			fmt.Printf("Parsed %s\n", path)
			fmt.Printf("  Individuals: %d\n", counts.Individuals)
			fmt.Printf("  Families:    %d\n", counts.Families)
			fmt.Printf("  Sources:     %d\n", counts.Sources)
			return nil
		}
		return printResult(counts)
	},
}
