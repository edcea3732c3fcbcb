package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial-name>",
	Short: "Suggest templates matching a partial name",
	Long: `Score templates against a partial string for autocomplete: name
matches rank above description matches, prefix matches rank highest.

Examples:
  propgen suggest "Software"
  propgen suggest "prop" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

var suggestLimit int

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 5, "Maximum number of suggestions")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	suggestions := cat.Suggest(args[0], suggestLimit)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tNAME\tMATCH")
	for _, s := range suggestions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Score, s.Template.ID, s.Template.Name, s.MatchType)
	}
	return w.Flush()
}
