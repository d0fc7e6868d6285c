package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"seo-content-go/pkg/logger"
	"seo-content-go/pkg/pipeline"
	"seo-content-go/pkg/storage"
)

var errPromptOnly = errors.New("prompt only")

var (
	runCSV        string
	runInput      pipeline.CategoryInput
	runGenerated  string
	runPromptOut  string
	runPromptOnly bool
	runNoSerp     bool
	runNoScrape   bool
	runSave       bool
	runFormat     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole flow for one category",
	Long: `Parses the keyword export, collects product names and competitor results,
builds the generation prompt and extracts the structured fields from the generated
text. Text generation happens outside this tool: pass its output with --generated,
or use --prompt-only to print the prompt for it.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runCSV, "csv", "", "keyword export (required)")
	f.StringVar(&runInput.Keyword, "keyword", "", "main category keyword (required)")
	f.StringSliceVar(&runInput.SiteProducts, "products", nil, "product names on the page")
	f.StringVar(&runInput.CategoryURL, "category-url", "", "category page to scrape when --products is empty")
	f.StringVar(&runInput.ParentURL, "parent-url", "", "parent category URL for the internal link")
	f.StringVar(&runInput.ParentName, "parent-name", "", "parent category anchor text")
	f.StringSliceVar(&runInput.SerpKeywords, "serp-keyword", nil, "keywords to search competitors for (default --keyword)")
	f.StringVarP(&runGenerated, "generated", "g", "", `generated text file, "-" for stdin`)
	f.StringVar(&runPromptOut, "prompt-out", "", "also write the prompt to this file")
	f.BoolVar(&runPromptOnly, "prompt-only", false, "print the prompt and stop")
	f.BoolVar(&runNoSerp, "no-serp", false, "skip competitor search")
	f.BoolVar(&runNoScrape, "no-scrape", false, "skip category page scraping")
	f.BoolVar(&runSave, "save", false, "store the result under storage.output_dir")
	f.StringVarP(&runFormat, "format", "f", formatText, "output format: text, json or yaml")
	_ = runCmd.MarkFlagRequired("csv")
	_ = runCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(runCmd)
}

// promptGenerator hands the prompt to the external generator by way of files: the
// prompt is optionally written out and the generated text is read back.
type promptGenerator struct {
	cmd        *cobra.Command
	promptOut  string
	generated  string
	promptOnly bool
	prompt     string
}

func (g *promptGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.promptOut != "" {
		if err := os.WriteFile(g.promptOut, []byte(prompt), 0o644); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}
	if g.promptOnly {
		return "", errPromptOnly
	}
	return readInput(g.cmd, g.generated)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := validateFormat(runFormat); err != nil {
		return err
	}
	if runGenerated == "" && !runPromptOnly {
		return errors.New("either --generated or --prompt-only is required")
	}

	gen := &promptGenerator{
		cmd:        cmd,
		promptOut:  runPromptOut,
		generated:  runGenerated,
		promptOnly: runPromptOnly,
	}
	deps := pipeline.Dependencies{Generator: gen}

	client := newHTTPClient()
	if !runNoScrape {
		deps.Scraper = newScraper(client)
		deps.Cache = newScrapeCache()
	}
	if !runNoSerp && cfg.Serp.Enabled {
		deps.Searcher = newSearcher(client)
	}
	if runSave && !runPromptOnly {
		store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.OutputDir)
		if err != nil {
			return err
		}
		if c, ok := store.(io.Closer); ok {
			defer c.Close()
		}
		deps.Store = store
	}

	p, err := pipeline.New(deps, pipeline.Options{
		SerpDisabled:      runNoSerp || !cfg.Serp.Enabled,
		MaxSerpKeywords:   cfg.Serp.MaxKeywords,
		ResultsPerKeyword: cfg.Serp.ResultsPerKeyword,
		MaxSerpResults:    cfg.Serp.MaxResults,
		SerpConcurrency:   cfg.Serp.Concurrency,
		RequestsPerSecond: cfg.Serp.RequestsPerSecond,
		TopN:              cfg.Ranker.TopN,
		FallbackKeywords:  cfg.Extractor.FallbackKeywords,
	})
	if err != nil {
		return err
	}

	out, err := p.Run(cmd.Context(), pipeline.NewSession(uuid.NewString(), runCSV), runInput)
	if errors.Is(err, errPromptOnly) {
		cmd.Print(gen.prompt)
		return nil
	}
	if err != nil {
		logger.WithError(err).WithField("keyword", runInput.Keyword).Error("category run failed")
		return err
	}
	logger.WithFields(map[string]interface{}{
		"keyword":  runInput.Keyword,
		"products": len(out.Products),
		"serp":     len(out.Serp),
		"document": out.DocumentID,
	}).Info("category run finished")

	if runFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), runFormat, out)
	}
	w := cmd.OutOrStdout()
	printExtracted(w, out.Content)
	fmt.Fprintf(w, "Products: %d, SERP results: %d\n", len(out.Products), len(out.Serp))
	for query, msg := range out.SerpErrors {
		fmt.Fprintf(w, "SERP %q failed: %s\n", query, msg)
	}
	if out.DocumentID != "" {
		fmt.Fprintf(w, "Saved as %s\n", out.DocumentID)
	}
	return nil
}
