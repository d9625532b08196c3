package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gedtree/gedtree/gedtree/match"
	"github.com/gedtree/gedtree/types"
)

var (
	dedupeCandidate string
	dedupeThreshold float64
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Score individuals against a candidate person",
	Long: `Dedupe scores every individual in the file against a candidate person
described in a YAML file, and reports those at or above the threshold,
best match first.

Candidate file example:
  first_name: Johann
  last_name: Schmidt
  gender: M
  birth_year: 1850
  birth_place: Hamburg, Germany`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(dedupeCandidate)
		if err != nil {
			return fmt.Errorf("failed to read candidate file: %w", err)
		}
		var candidate types.PersonSummary
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			return fmt.Errorf("invalid candidate file: %w", err)
		}
		if dedupeThreshold < 0 || dedupeThreshold > 1 {
			return fmt.Errorf("threshold must be between 0 and 1, got %v", dedupeThreshold)
		}

		s, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		matches, err := s.FindPotentialDuplicates(candidate, dedupeThreshold)
		if err != nil {
			return err
		}
		return printResult(matches)
	},
}

func init() {
	dedupeCmd.Flags().StringVarP(&dedupeCandidate, "candidate", "c", "", "YAML file describing the candidate person (required)")
	dedupeCmd.Flags().Float64VarP(&dedupeThreshold, "threshold", "t", match.DefaultDuplicateThreshold, "minimum similarity score to report")
	_ = dedupeCmd.MarkFlagRequired("candidate")
}
