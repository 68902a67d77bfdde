// Command dtsctl ingests TEI documents and collection descriptors and
// answers navigation/passage queries against them from the command
// line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDBDSN string
	flagDebug bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dtsctl",
		Short: "Query and ingest TEI citation trees",
	}
	root.PersistentFlags().StringVar(&flagDBDSN, "db", "dts.db", "reference store database path")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable verbose store logging")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newNavCmd())
	root.AddCommand(newPassageCmd())
	root.AddCommand(newDiffCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
