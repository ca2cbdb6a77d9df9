// Package scrape implements the scrape command: one full extraction run.
package scrape

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsminer/cmd/common"
	"github.com/jonesrussell/newsminer/internal/news"
	"github.com/jonesrussell/newsminer/internal/pipeline"
	"github.com/jonesrussell/newsminer/internal/textproc"
)

// descriptionPreview truncates descriptions in the summary table.
const descriptionPreview = 60

// Flags for the scrape command.
var (
	keyword  string
	category string
	months   int
)

// Command returns the scrape command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one news extraction",
		Long: `Search the news site for the configured keyword, collect every article
within the configured time window, post-process the results, and write the
export file.`,
		RunE: runScrape,
	}
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "search keyword (overrides config)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category filter (overrides config)")
	cmd.Flags().IntVarP(&months, "months", "m", -1,
		"months period: 0 = current month only (overrides config)")
	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")

	deps, err := cmdcommon.NewCommandDeps(cfgFile, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	scraperCfg := deps.Config.GetScraperConfig()
	if keyword != "" {
		scraperCfg.Keyword = keyword
	}
	if category != "" {
		scraperCfg.CategoryFilter = category
	}
	if cmd.Flags().Changed("months") {
		scraperCfg.MonthsPeriod = months
	}
	if err := deps.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	summary, err := pipeline.Run(cmd.Context(), deps.Config, deps.Logger)
	if err != nil {
		return err
	}

	if len(summary.Results) == 0 {
		deps.Logger.Warn("run produced no articles")
		return nil
	}

	printSummary(summary.Results)
	deps.Logger.Info("extraction complete",
		"run_id", summary.RunID,
		"articles", len(summary.Results),
		"export", summary.ExportPath)
	return nil
}

// printSummary renders the scraped articles as a table on stdout.
func printSummary(results []textproc.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Title", "Published", "Matches", "Money"})

	for i := range results {
		r := &results[i]
		published := string(r.DateStatus)
		if r.DateStatus == news.DateOK {
			published = r.PublishedAt.Format("2006-01-02 15:04")
		}
		title := r.Title
		if title == "" {
			title = truncate(r.Description, descriptionPreview)
		}
		t.AppendRow(table.Row{i + 1, title, published, r.KeywordMatches, r.ContainsMoney})
	}
	t.Render()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
