package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/dtscore/dts/internal/document"
)

func newDiffCmd() *cobra.Command {
	var tree, refA, refB string

	cmd := &cobra.Command{
		Use:   "diff <path>",
		Short: "Show a unified diff between two passages of the same document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Open(args[0])
			if err != nil {
				return err
			}

			a, err := doc.GetPassage(tree, refA, "")
			if err != nil {
				return fmt.Errorf("resolving %q: %w", refA, err)
			}
			b, err := doc.GetPassage(tree, refB, "")
			if err != nil {
				return fmt.Errorf("resolving %q: %w", refB, err)
			}

			diff := difflib.UnifiedDiff{
				A:        difflib.SplitLines(a),
				B:        difflib.SplitLines(b),
				FromFile: refA,
				ToFile:   refB,
				Context:  2,
			}
			text, err := difflib.GetUnifiedDiffString(diff)
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&tree, "tree", "", "named citation tree (defaults to the document's default tree)")
	cmd.Flags().StringVar(&refA, "a", "", "first ref")
	cmd.Flags().StringVar(&refB, "b", "", "second ref")
	return cmd
}
