package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propgen/propgen/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for propgen.

Examples:
  propgen version
  propgen version -f json`,
	RunE: runVersion,
}

var versionFormat string

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetBuildInfo()

	switch versionFormat {
	case "json":
		return outputStructured("json", info)
	case "text":
		fmt.Printf("propgen %s (%s, %s, %s)\n",
			info.Version, info.GitCommit, info.GoVersion, info.Platform)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
	}
}
