package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate the template directory and report problems",
	Long: `Load every template definition and report per-file load errors and
dangling variant references. Problems are diagnostics, not failures: the
catalog stays usable with whatever loaded cleanly.

Examples:
  propgen validate                # Report problems, exit 0
  propgen validate --strict       # Exit non-zero when any problem exists`,
	RunE: runValidate,
}

var validateStrict bool

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when any load or relationship problem exists")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cat, cfg, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	loadErrors := cat.LoadErrors()
	relErrors := cat.RelationshipErrors()

	fmt.Printf("Templates directory: %s\n", cfg.Templates.Dir)
	fmt.Printf("Templates loaded:    %d\n", cat.Len())
	fmt.Printf("Load errors:         %d\n", len(loadErrors))
	fmt.Printf("Relationship errors: %d\n", len(relErrors))

	if len(loadErrors) > 0 {
		fmt.Println("\nLoad errors:")
		for _, e := range loadErrors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(relErrors) > 0 {
		fmt.Println("\nRelationship errors:")
		for _, e := range relErrors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if validateStrict && (len(loadErrors) > 0 || len(relErrors) > 0) {
		return fmt.Errorf("validation found %d problem(s)", len(loadErrors)+len(relErrors))
	}
	return nil
}
