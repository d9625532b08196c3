package main

import (
	"fmt"

	"github.com/gedtree/gedtree/types"
	"github.com/spf13/cobra"
)

var (
	listRoots    bool
	listYoungest bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List individuals in the file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listRoots && listYoungest {
			return fmt.Errorf("--roots and --youngest are mutually exclusive")
		}

		s, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}

		var people []types.PersonSummary
		switch {
		case listRoots:
			people, err = s.RootAncestors()
		case listYoungest:
			people, err = s.YoungestGeneration()
		default:
			people, err = s.AllIndividuals()
		}
		if err != nil {
			return err
		}
		return printResult(people)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listRoots, "roots", false, "only individuals with no recorded parents")
	listCmd.Flags().BoolVar(&listYoungest, "youngest", false, "only individuals with no recorded children")
}
