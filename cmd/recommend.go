package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propgen/propgen/internal/catalog"
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"r"},
	Short:   "Recommend templates for a company profile",
	Long: `Score every template against a company profile (industry, size,
tone) plus usage popularity and return the top matches.

Examples:
  propgen recommend --industry technology --size startup --tone startup_agile
  propgen recommend --industry finance`,
	RunE: runRecommend,
}

var (
	recommendIndustry string
	recommendSize     string
	recommendTone     string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recommendIndustry, "industry", "", "Company industry")
	recommendCmd.Flags().StringVar(&recommendSize, "size", "", "Company size")
	recommendCmd.Flags().StringVar(&recommendTone, "tone", "", "Preferred document tone")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	results := cat.Recommend(catalog.Profile{
		Industry: recommendIndustry,
		Size:     recommendSize,
		Tone:     recommendTone,
	}, nil)

	if len(results) == 0 {
		fmt.Println("No recommendations for this profile.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tTONE\tUSAGE")
	for _, t := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			t.ID, t.Name, t.Industry, t.Tone, t.Usage.UsageCount)
	}
	return w.Flush()
}
