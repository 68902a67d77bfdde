package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/document"
)

func newPassageCmd() *cobra.Command {
	var tree, start, end string

	cmd := &cobra.Command{
		Use:   "passage <path>",
		Short: "Answer a get_passage query against a TEI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Open(args[0])
			if err != nil {
				return err
			}
			out, err := doc.GetPassage(tree, start, end)
			if err != nil {
				switch {
				case errors.Is(err, core.ErrUnknownTree):
					return fmt.Errorf("%w (use --tree to name one of the document's declared citation trees)", err)
				case errors.Is(err, core.ErrNonTraversable):
					return fmt.Errorf("%w (--ref and --end don't share a reconstructable ancestor path)", err)
				}
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&tree, "tree", "", "named citation tree (defaults to the document's default tree)")
	cmd.Flags().StringVar(&start, "ref", "", "single ref, or start of a range")
	cmd.Flags().StringVar(&end, "end", "", "end ref (inclusive) of a range")
	return cmd
}
