package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedtree/gedtree/gedtree/mutate"
)

var addParams mutate.AddIndividualParams

var addPersonCmd = &cobra.Command{
	Use:   "add-person",
	Short: "Add an individual and write the file back",
	Long: `Add-person creates a new individual record with validated dates and
saves the updated file in place. Month names are corrected to GEDCOM
three-letter abbreviations; dates without a year get an ABT prefix.
Inconsistent dates (death before birth) reject the operation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}

		result, err := s.AddIndividual(addParams)
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		if !result.Success {
			return fmt.Errorf("%s", result.Error)
		}

		if err := s.SaveFile(cmd.Context(), cfg.GetString("file")); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", result.ID)
		return nil
	},
}

func init() {
	addPersonCmd.Flags().StringVar(&addParams.FirstName, "first-name", "", "given name")
	addPersonCmd.Flags().StringVar(&addParams.LastName, "last-name", "", "surname")
	addPersonCmd.Flags().StringVar(&addParams.Gender, "gender", "U", "gender: M|F|U")
	addPersonCmd.Flags().StringVar(&addParams.BirthDate, "birth-date", "", "birth date, e.g. \"15 MAR 1850\"")
	addPersonCmd.Flags().StringVar(&addParams.BirthPlace, "birth-place", "", "birth place")
	addPersonCmd.Flags().StringVar(&addParams.DeathDate, "death-date", "", "death date")
	addPersonCmd.Flags().StringVar(&addParams.DeathPlace, "death-place", "", "death place")
	addPersonCmd.Flags().StringArrayVar(&addParams.Notes, "note", nil, "note to attach (repeatable)")
}
