package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-path]",
	Short: "Export the catalog summary as JSON",
	Long: `Write a flattened catalog summary (one record per template plus
aggregate statistics) to a JSON file.

Examples:
  propgen export                  # Writes to the configured export path
  propgen export catalog.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cat, cfg, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	path := cfg.Export.Path
	if len(args) == 1 {
		path = args[0]
	}

	if err := cat.Export(path); err != nil {
		return err
	}
	fmt.Printf("Exported %d templates to %s\n", cat.Len(), path)
	return nil
}
