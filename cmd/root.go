// Package cmd implements the command-line interface for newsminer.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsminer/cmd/schedule"
	"github.com/jonesrussell/newsminer/cmd/scrape"
)

// version is set at build time.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands
	debug bool

	// rootCmd represents the root command for the newsminer CLI.
	rootCmd = &cobra.Command{
		Use:   "newsminer",
		Short: "A keyword news scraper with a time-window stop condition",
		Long: `newsminer searches a news site for a keyword, extracts structured
articles page by page, and stops once results age past the configured
number of calendar months.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env early so environment variables are available
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newsminer version %s\n", version)
		},
	})

	rootCmd.AddCommand(scrape.Command())
	rootCmd.AddCommand(schedule.Command())
}
