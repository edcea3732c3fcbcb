package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/propgen/propgen/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all loaded templates",
	Long: `List every template in the catalog with its taxonomy metadata.

Examples:
  propgen list                    # List all templates in table format
  propgen list -f json            # Output as JSON
  propgen list --industry technology
  propgen list --options          # Show all available filter values`,
	RunE: runList,
}

var (
	listFormat   string
	listIndustry string
	listDocType  string
	listOptions  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
	listCmd.Flags().StringVar(&listIndustry, "industry", "", "Filter by industry")
	listCmd.Flags().StringVar(&listDocType, "document-type", "", "Filter by document type")
	listCmd.Flags().BoolVar(&listOptions, "options", false, "Show all available filter values instead of templates")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validateFormat(listFormat, "table", "json", "yaml"); err != nil {
		return err
	}

	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if listOptions {
		return outputStructured(listFormat, cat.FilterOptions())
	}

	templates := cat.Search(catalog.Filter{
		Industry:     listIndustry,
		DocumentType: listDocType,
	})
	if len(templates) == 0 {
		fmt.Println("No templates found.")
		return nil
	}

	switch listFormat {
	case "json", "yaml":
		records := make([]interface{}, 0, len(templates))
		for _, t := range templates {
			records = append(records, t.Metadata())
		}
		return outputStructured(listFormat, records)
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tCATEGORY\tTYPE\tCOMPLEXITY\tSECTIONS")
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				t.ID, t.Name, t.Industry, t.Category, t.DocumentType, t.Complexity, len(t.Sections))
		}
		return w.Flush()
	}
}

func outputStructured(format string, v interface{}) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(string(data)))
	}
	return nil
}
