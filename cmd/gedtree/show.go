package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the full record of one individual",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		details, err := s.PersonDetails(args[0])
		if err != nil {
			return err
		}
		return printResult(details)
	},
}
