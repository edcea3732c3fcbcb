package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propgen/propgen/internal/generation"
)

var showCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show a template's metadata and sections",
	Long: `Show the metadata projection for one template, or the generation
context (section prompt texts) the document generator would receive.

Examples:
  propgen show tech_project_proposal
  propgen show tech_project_proposal --prompts
  propgen show tech_project_proposal --prompts --sections executive_summary,scope`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showPrompts  bool
	showSections []string
	showFormat   string
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPrompts, "prompts", false, "Show the generation context instead of metadata")
	showCmd.Flags().StringSliceVar(&showSections, "sections", nil, "Explicit section IDs to include (default: required sections)")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "json", "Output format (json, yaml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := validateFormat(showFormat, "json", "yaml"); err != nil {
		return err
	}

	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if showPrompts {
		genCtx, err := generation.Build(cat, args[0], showSections)
		if err != nil {
			return err
		}
		return outputStructured(showFormat, genCtx)
	}

	meta := cat.Metadata(args[0])
	if meta == nil {
		fmt.Printf("Template %q not found.\n", args[0])
		return nil
	}
	return outputStructured(showFormat, meta)
}
