package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics and discovery health",
	Long: `Show aggregate template counts per dimension, or the full discovery
health report (files found versus loaded, success rate, index sizes).

Examples:
  propgen stats
  propgen stats --health
  propgen stats -f yaml`,
	RunE: runStats,
}

var (
	statsHealth bool
	statsFormat string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsHealth, "health", false, "Show the discovery health report")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "json", "Output format (json, yaml)")
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := validateFormat(statsFormat, "json", "yaml"); err != nil {
		return err
	}

	cat, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if statsHealth {
		return outputStructured(statsFormat, cat.Health())
	}
	return outputStructured(statsFormat, cat.Stats())
}
