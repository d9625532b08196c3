package main

import (
	"github.com/spf13/cobra"

	"github.com/gedtree/gedtree/gedtree/session"
	"github.com/gedtree/gedtree/types"
)

// relationCommands builds one subcommand per relationship query. Each
// takes a GEDCOM ID or a full name and prints the related individuals.
func relationCommands() []*cobra.Command {
	specs := []struct {
		use   string
		short string
		query func(s *session.Session, identifier string) ([]types.PersonSummary, error)
	}{
		{"parents", "Parents of an individual", (*session.Session).Parents},
		{"children", "Children of an individual", (*session.Session).Children},
		{"spouses", "Spouses of an individual", (*session.Session).Spouses},
		{"siblings", "Siblings of an individual", (*session.Session).Siblings},
		{"grandparents", "Grandparents of an individual", (*session.Session).Grandparents},
		{"aunts-uncles", "Aunts and uncles of an individual", (*session.Session).AuntsUncles},
		{"cousins", "First cousins of an individual", (*session.Session).Cousins},
	}

	cmds := make([]*cobra.Command, 0, len(specs))
	for _, spec := range specs {
		query := spec.query
		cmds = append(cmds, &cobra.Command{
			Use:   spec.use + " <id|name>",
			Short: spec.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := loadSession(cmd.Context())
				if err != nil {
					return err
				}
				people, err := query(s, args[0])
				if err != nil {
					return err
				}
				return printResult(people)
			},
		})
	}
	return cmds
}
