package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Regenerate GEDCOM text from the parsed graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		content, err := s.Export()
		if err != nil {
			return err
		}
		if exportOutput == "" {
			fmt.Println(content)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(content+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Printf("Wrote %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}
