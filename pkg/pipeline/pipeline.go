// Package pipeline runs one category through the whole flow: keyword export parsing,
// ranking, product and competitor collection, generation and extraction.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"seo-content-go/pkg/csvparse"
	"seo-content-go/pkg/extractor"
	"seo-content-go/pkg/keyword"
	"seo-content-go/pkg/logger"
	"seo-content-go/pkg/scraper"
	"seo-content-go/pkg/serp"
	"seo-content-go/pkg/storage"
	"seo-content-go/pkg/utils"
)

// Default limits for competitor collection.
const (
	DefaultMaxSerpKeywords   = 5
	DefaultResultsPerKeyword = 10
	DefaultMaxSerpResults    = 20
	DefaultSerpConcurrency   = 2
	DefaultTopN              = 30
)

var (
	// ErrNoKeyword is returned when the category keyword is empty.
	ErrNoKeyword = errors.New("category keyword is required")
	// ErrGeneration wraps failures of the text generator.
	ErrGeneration = errors.New("content generation failed")
)

// Generator produces the page text for a prompt. It is implemented outside this module.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ProductScraper is the part of scraper.Scraper the pipeline uses.
type ProductScraper interface {
	Scrape(ctx context.Context, pageURL string) scraper.ScrapeResult
}

// Options holds the run limits. Zero values select the defaults.
type Options struct {
	SerpDisabled      bool
	MaxSerpKeywords   int
	ResultsPerKeyword int
	MaxSerpResults    int
	SerpConcurrency   int
	RequestsPerSecond float64
	TopN              int
	FallbackKeywords  int
}

func (o Options) withDefaults() Options {
	if o.MaxSerpKeywords <= 0 {
		o.MaxSerpKeywords = DefaultMaxSerpKeywords
	}
	if o.ResultsPerKeyword <= 0 {
		o.ResultsPerKeyword = DefaultResultsPerKeyword
	}
	if o.MaxSerpResults <= 0 {
		o.MaxSerpResults = DefaultMaxSerpResults
	}
	if o.SerpConcurrency <= 0 {
		o.SerpConcurrency = DefaultSerpConcurrency
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.FallbackKeywords <= 0 {
		o.FallbackKeywords = extractor.DefaultFallbackKeywords
	}
	return o
}

// Dependencies are the collaborators of a Pipeline. Generator is required; a nil
// Searcher skips competitor collection, a nil Scraper skips product scraping, a nil
// Cache disables scrape caching and a nil Store skips persistence.
type Dependencies struct {
	Generator Generator
	Searcher  serp.Searcher
	Scraper   ProductScraper
	Cache     *storage.MemoryCache[scraper.ScrapeResult]
	Store     storage.Store
}

// Output is the result of one run.
type Output struct {
	DocumentID string                     `json:"document_id,omitempty"`
	Content    extractor.ExtractedContent `json:"content"`
	Analysis   keyword.Analysis           `json:"analysis"`
	Report     csvparse.Report            `json:"csv_report"`
	Products   []string                   `json:"products"`
	Scrape     *scraper.ScrapeResult      `json:"scrape,omitempty"`
	Serp       []serp.SerpResult          `json:"serp"`
	Titles     serp.TitleAnalysis         `json:"title_analysis"`
	SerpErrors map[string]string          `json:"serp_errors,omitempty"`
	Prompt     string                     `json:"-"`
}

// Pipeline is safe for concurrent runs; all per-run state lives in the Session and the
// returned Output.
type Pipeline struct {
	deps      Dependencies
	opts      Options
	parser    *csvparse.Parser
	extractor *extractor.Extractor
	throttle  *Throttle
	log       *logger.Logger
}

// New creates a pipeline.
func New(deps Dependencies, opts Options) (*Pipeline, error) {
	if deps.Generator == nil {
		return nil, errors.New("pipeline requires a generator")
	}
	opts = opts.withDefaults()

	ext := extractor.NewExtractor()
	ext.SetFallbackCount(opts.FallbackKeywords)

	return &Pipeline{
		deps:      deps,
		opts:      opts,
		parser:    csvparse.NewParser(),
		extractor: ext,
		throttle:  NewThrottle(opts.RequestsPerSecond),
		log:       logger.GetLogger().Component("pipeline"),
	}, nil
}

// Run processes input with the keyword export held by session. A missing export and
// generator failures are returned as errors; scraping and search failures only reduce
// the context handed to the generator.
func (p *Pipeline) Run(ctx context.Context, session *Session, input CategoryInput) (*Output, error) {
	if err := session.validate(); err != nil {
		return nil, err
	}
	if input.Keyword == "" {
		return nil, ErrNoKeyword
	}

	records, report, err := p.parser.ParseFile(session.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}

	out := &Output{
		Analysis: keyword.Analyze(records, p.opts.TopN),
		Report:   report,
		Products: input.SiteProducts,
	}

	if len(out.Products) == 0 && input.CategoryURL != "" && p.deps.Scraper != nil {
		result := p.scrape(ctx, input.CategoryURL)
		out.Scrape = &result
		out.Products = result.Products
	}
	if out.Products == nil {
		out.Products = []string{}
	}

	out.Serp, out.SerpErrors = p.collectSerp(ctx, input)
	out.Titles = serp.AnalyzeTitles(out.Serp)

	out.Prompt = BuildPrompt(Brief{
		Input:    input,
		Analysis: out.Analysis,
		Records:  records,
		Products: out.Products,
		Serp:     out.Serp,
		Titles:   out.Titles,
	})

	raw, err := p.deps.Generator.Generate(ctx, out.Prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	out.Content = p.extractor.Extract(raw, keyword.Keywords(records))

	if p.deps.Store != nil {
		id, err := p.deps.Store.Save(ctx, &storage.Document{
			Keyword:  input.Keyword,
			Content:  out.Content,
			Products: out.Products,
			Serp:     serp.FormatForPrompt(out.Serp),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store output: %w", err)
		}
		out.DocumentID = id
	}

	p.log.WithFields(map[string]interface{}{
		"session":  session.ID,
		"keyword":  input.Keyword,
		"keywords": len(records),
		"products": len(out.Products),
		"serp":     len(out.Serp),
	}).Info("Category processed")
	return out, nil
}

func (p *Pipeline) scrape(ctx context.Context, pageURL string) scraper.ScrapeResult {
	key := utils.URLKey(pageURL)
	if p.deps.Cache != nil {
		if cached, ok := p.deps.Cache.Get(key); ok {
			return cached
		}
	}

	result := p.deps.Scraper.Scrape(ctx, pageURL)
	// Only successful scrapes are cached; failures may be transient.
	if p.deps.Cache != nil && result.Success {
		p.deps.Cache.Set(key, result)
	}
	return result
}

// collectSerp searches the first MaxSerpKeywords keywords with bounded parallelism and
// merges the batches in keyword order.
func (p *Pipeline) collectSerp(ctx context.Context, input CategoryInput) ([]serp.SerpResult, map[string]string) {
	if p.opts.SerpDisabled || p.deps.Searcher == nil {
		return []serp.SerpResult{}, nil
	}

	queries := input.SerpKeywords
	if len(queries) == 0 {
		queries = []string{input.Keyword}
	}
	if len(queries) > p.opts.MaxSerpKeywords {
		queries = queries[:p.opts.MaxSerpKeywords]
	}

	batches := make([][]serp.SerpResult, len(queries))
	failures := make([]error, len(queries))
	progress := logger.NewProgressReporter(p.log, len(queries), "SERP")

	workers := pool.New().WithMaxGoroutines(p.opts.SerpConcurrency)
	for i, query := range queries {
		i, query := i, query
		workers.Go(func() {
			err := p.throttle.Execute(ctx, func() error {
				results, err := p.deps.Searcher.Search(ctx, query, p.opts.ResultsPerKeyword)
				if len(results) > p.opts.ResultsPerKeyword {
					results = results[:p.opts.ResultsPerKeyword]
				}
				batches[i] = results
				return err
			})
			failures[i] = err
			progress.Done(query, err)
		})
	}
	workers.Wait()

	var errs map[string]string
	for i, err := range failures {
		if err == nil {
			continue
		}
		if errs == nil {
			errs = make(map[string]string)
		}
		errs[queries[i]] = err.Error()
	}
	return serp.Aggregate(batches, p.opts.MaxSerpResults), errs
}
