package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedtree/gedtree/types"
)

var (
	treeDirection       string
	treeDepth           int
	treeAncestorDepth   int
	treeDescendantDepth int
)

var treeCmd = &cobra.Command{
	Use:   "tree <id|name>",
	Short: "Build a tree projection rooted at an individual",
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

		var tree *types.TreeNode
		switch treeDirection {
		case "ancestor":
			tree, err = s.AncestorTree(details.ID, treeDepth)
		case "descendant":
			tree, err = s.DescendantTree(details.ID, treeDepth)
		case "both":
			up, down := treeAncestorDepth, treeDescendantDepth
			if up == 0 {
				up = treeDepth
			}
			if down == 0 {
				down = treeDepth
			}
			tree, err = s.BidirectionalTree(details.ID, up, down)
		default:
			return fmt.Errorf("invalid direction %q: must be ancestor, descendant, or both", treeDirection)
		}
		if err != nil {
			return err
		}
		return printResult(tree)
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeDirection, "direction", "d", "ancestor", "tree direction: ancestor|descendant|both")
	treeCmd.Flags().IntVar(&treeDepth, "depth", 4, "maximum generations from the root")
	treeCmd.Flags().IntVar(&treeAncestorDepth, "ancestor-depth", 0, "ancestor generations for --direction both (defaults to --depth)")
	treeCmd.Flags().IntVar(&treeDescendantDepth, "descendant-depth", 0, "descendant generations for --direction both (defaults to --depth)")
}
