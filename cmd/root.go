// Package cmd provides the propgen command-line interface with
// configuration management supporting multiple sources.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags (--templates-dir, --log-level, ...)
//  2. PROPGEN_-prefixed environment variables (PROPGEN_TEMPLATES_DIR, ...)
//  3. Configuration file (.propgen.yml)
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "propgen",
	Short: "Business-document template catalog and generation toolkit",
	Long: `Propgen manages a catalog of reusable business-document templates
(proposals, feasibility studies, reports) and prepares the generation
context used to draft documents from them.

Key Features:
  • Recursive template discovery with strict validation
  • Six-dimensional indexed lookup (industry, category, type, tone,
    complexity, company size)
  • Scored search, suggestions, recommendations, and similarity
  • Change detection and hot reload of the template directory
  • Catalog statistics, health reporting, and JSON export

Quick Start:
  propgen list                    List all loaded templates
  propgen validate                Report load and relationship errors
  propgen search --industry technology
  propgen watch                   Hot-reload the catalog on file changes

Command Aliases (for faster typing):
  list (l), search (s), validate (v), recommend (r), watch (w)`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .propgen.yml, can also use PROPGEN_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("templates-dir", "", "templates directory (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	bindConfigFlags(rootCmd.PersistentFlags())
}

// bindConfigFlags wires the persistent flags into viper so flag values
// override config file and environment settings.
func bindConfigFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("templates.dir", flags.Lookup("templates-dir"))
	viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	viper.BindPFlag("logging.format", flags.Lookup("log-format"))
}

// initConfig initializes the configuration system.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PROPGEN_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".propgen")
	}

	viper.SetEnvPrefix("PROPGEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
