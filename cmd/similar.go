package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var similarCmd = &cobra.Command{
	Use:   "similar <template-id>",
	Short: "Find templates similar to a reference template",
	Long: `Score every other template against the reference on industry,
document type, tone, and company-size overlap.

Examples:
  propgen similar tech_project_proposal
  propgen similar tech_project_proposal --limit 3
  propgen similar tech_project_proposal --family   # variants instead of scoring`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var (
	similarLimit  int
	similarFamily bool
)

func init() {
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().IntVar(&similarLimit, "limit", 5, "Maximum number of matches")
	similarCmd.Flags().BoolVar(&similarFamily, "family", false, "Show the template's variant family instead of similarity matches")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if similarFamily {
		family := cat.Family(args[0])
		if len(family) == 0 {
			fmt.Printf("Template %q not found.\n", args[0])
			return nil
		}
		for _, t := range family {
			fmt.Printf("%s\t%s\n", t.ID, t.Name)
		}
		return nil
	}

	matches := cat.Similar(args[0], similarLimit)
	if len(matches) == 0 {
		fmt.Println("No similar templates.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tNAME")
	for _, m := range matches {
		fmt.Fprintf(w, "%.2f\t%s\t%s\n", m.Score, m.Template.ID, m.Template.Name)
	}
	return w.Flush()
}
