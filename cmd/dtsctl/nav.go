package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtscore/dts/internal/core"
	"github.com/dtscore/dts/internal/document"
)

func newNavCmd() *cobra.Command {
	var tree, start, end string
	var down int

	cmd := &cobra.Command{
		Use:   "nav <path>",
		Short: "Answer a get_nav query against a TEI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Open(args[0])
			if err != nil {
				return err
			}
			res, err := doc.GetNav(tree, start, end, down)
			if err != nil {
				switch {
				case errors.Is(err, core.ErrUnknownTree):
					return fmt.Errorf("%w (use --tree to name one of the document's declared citation trees)", err)
				case errors.Is(err, core.ErrUnknownRef):
					return fmt.Errorf("%w (check --start/--end against the document's enumerated refs)", err)
				case errors.Is(err, core.ErrInvalidRangeOrder):
					return fmt.Errorf("%w (--start must precede --end in document order)", err)
				}
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&tree, "tree", "", "named citation tree (defaults to the document's default tree)")
	cmd.Flags().StringVar(&start, "start", "", "start ref, or the single ref when end is unset")
	cmd.Flags().StringVar(&end, "end", "", "end ref (inclusive)")
	cmd.Flags().IntVar(&down, "down", 1, "levels below the reached level to include; -1 for unrestricted")
	return cmd
}
