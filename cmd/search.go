package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propgen/propgen/internal/catalog"
	"github.com/propgen/propgen/internal/types"
)

var searchCmd = &cobra.Command{
	Use:     "search",
	Aliases: []string{"s"},
	Short:   "Search templates with filters",
	Long: `Search the catalog. Scalar filters conjoin with logical AND; list
filters OR within the field and AND across fields. Omitted filters are
skipped.

Examples:
  propgen search --industry technology --document-type proposal
  propgen search --text "feasibility"
  propgen search --industries technology,business --max-complexity medium
  propgen search --max-time 60 --required-only
  propgen search --fuzzy "softwre propsal"`,
	RunE: runSearch,
}

var (
	searchIndustry    string
	searchCategory    string
	searchDocType     string
	searchTone        string
	searchComplexity  string
	searchSize        string
	searchText        string
	searchIndustries  []string
	searchDocTypes    []string
	searchSizes       []string
	searchMaxComplex  string
	searchMaxTime     int
	searchHasVariants bool
	searchRequired    bool
	searchFuzzy       string
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "Filter by industry")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Filter by category (within --industry)")
	searchCmd.Flags().StringVar(&searchDocType, "document-type", "", "Filter by document type")
	searchCmd.Flags().StringVar(&searchTone, "tone", "", "Filter by tone")
	searchCmd.Flags().StringVar(&searchComplexity, "complexity", "", "Filter by complexity level")
	searchCmd.Flags().StringVar(&searchSize, "company-size", "", "Filter by company size")
	searchCmd.Flags().StringVar(&searchText, "text", "", "Substring match on name and description")

	searchCmd.Flags().StringSliceVar(&searchIndustries, "industries", nil, "Match any of these industries")
	searchCmd.Flags().StringSliceVar(&searchDocTypes, "document-types", nil, "Match any of these document types")
	searchCmd.Flags().StringSliceVar(&searchSizes, "company-sizes", nil, "Match any of these company sizes")
	searchCmd.Flags().StringVar(&searchMaxComplex, "max-complexity", "", "Maximum complexity level (low, medium, high)")
	searchCmd.Flags().IntVar(&searchMaxTime, "max-time", 0, "Maximum estimated time in minutes")
	searchCmd.Flags().BoolVar(&searchHasVariants, "has-variants", false, "Only templates with variants")
	searchCmd.Flags().BoolVar(&searchRequired, "required-only", false, "Only templates with exclusively required sections")

	searchCmd.Flags().StringVar(&searchFuzzy, "fuzzy", "", "Fuzzy free-text search (overrides other filters)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	results := searchResults(cmd, cat)
	if len(results) == 0 {
		fmt.Println("No templates matched.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tTYPE\tTONE\tTIME")
	for _, t := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dm\n",
			t.ID, t.Name, t.Industry, t.DocumentType, t.Tone, t.EstimatedTimeMinutes)
	}
	return w.Flush()
}

func searchResults(cmd *cobra.Command, cat *catalog.Catalog) []*types.Template {
	if searchFuzzy != "" {
		return cat.FuzzySearch(searchFuzzy)
	}

	advanced := len(searchIndustries) > 0 || len(searchDocTypes) > 0 ||
		len(searchSizes) > 0 || searchMaxComplex != "" || searchMaxTime > 0 ||
		cmd.Flags().Changed("has-variants") || searchRequired

	if advanced {
		criteria := catalog.Criteria{
			Industries:           searchIndustries,
			DocumentTypes:        searchDocTypes,
			CompanySizes:         searchSizes,
			MaxComplexity:        searchMaxComplex,
			MaxTimeMinutes:       searchMaxTime,
			RequiredSectionsOnly: searchRequired,
		}
		if cmd.Flags().Changed("has-variants") {
			criteria.HasVariants = &searchHasVariants
		}
		return cat.SearchByCriteria(criteria)
	}

	return cat.Search(catalog.Filter{
		Industry:     searchIndustry,
		Category:     searchCategory,
		DocumentType: searchDocType,
		Tone:         searchTone,
		Complexity:   searchComplexity,
		CompanySize:  searchSize,
		SearchText:   searchText,
	})
}
