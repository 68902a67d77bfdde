package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dtscore/dts/internal/catalog"
	"github.com/dtscore/dts/internal/document"
	"github.com/dtscore/dts/internal/store"
)

func newIngestCmd() *cobra.Command {
	var asCatalog bool
	var identifier string

	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest a TEI document or collection descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			runID := uuid.New()

			if asCatalog {
				cat, root, err := catalog.ParseFile(path, nil)
				if err != nil {
					return err
				}
				fmt.Printf("[run %s] ingested collection %q (%d objects, %d relationships)\n",
					runID, root.Identifier, len(cat.Objects), len(cat.Relationships))
				return nil
			}

			doc, err := document.Open(path)
			if err != nil {
				return err
			}

			db, err := store.Connect(flagDBDSN, flagDebug)
			if err != nil {
				return err
			}

			id := identifier
			if id == "" {
				id = path
			}
			for name, tree := range doc.Trees {
				if err := store.SaveTree(db, id, path, tree); err != nil {
					return fmt.Errorf("run %s: saving tree %q: %w", runID, name, err)
				}
				fmt.Printf("[run %s] saved tree %q: %d top-level units\n", runID, name, len(tree.Units))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCatalog, "catalog", false, "treat path as a collection descriptor instead of a TEI document")
	cmd.Flags().StringVar(&identifier, "id", "", "document identifier to store trees under (defaults to the file path)")
	return cmd
}
