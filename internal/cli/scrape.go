package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"seo-content-go/pkg/scraper"
)

var (
	scrapeHTMLFile string
	scrapeFormat   string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <category-url>",
	Short: "Find the product names listed on a category page",
	Long: `Fetches a category page, guesses the shop platform and tries the selector
cascade until one selector yields enough distinct product names.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeHTMLFile, "html", "", "read the page markup from a file instead of fetching it")
	scrapeCmd.Flags().StringVarP(&scrapeFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if err := validateFormat(scrapeFormat); err != nil {
		return err
	}

	var result scraper.ScrapeResult
	if scrapeHTMLFile != "" {
		markup, err := os.ReadFile(scrapeHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read markup: %w", err)
		}
		result = newScraper(nil).ScrapeHTML(string(markup), args[0])
	} else {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Scraper.Timeout)
		defer cancel()
		result = newScraper(newHTTPClient()).Scrape(ctx, args[0])
	}

	if scrapeFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), scrapeFormat, result)
	}
	printScrape(cmd.OutOrStdout(), result)
	return nil
}

func printScrape(w io.Writer, r scraper.ScrapeResult) {
	fmt.Fprintf(w, "Platform: %s\n", r.Platform)
	if !r.Success {
		fmt.Fprintf(w, "Failed (%s): %s\n", r.ErrorKind, r.Error)
		return
	}
	fmt.Fprintf(w, "Selector: %s\n", r.SelectorUsed)
	fmt.Fprintf(w, "Products: %d\n", r.TotalFound)
	for i, p := range r.Products {
		fmt.Fprintf(w, "%3d. %s\n", i+1, p)
	}
}
