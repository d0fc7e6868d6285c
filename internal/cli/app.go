package cli

import (
	"seo-content-go/pkg/scraper"
	"seo-content-go/pkg/serp"
	"seo-content-go/pkg/storage"
)

func newHTTPClient() *scraper.HTTPClient {
	client := scraper.NewHTTPClient(cfg.Scraper.Timeout)
	client.SetAcceptLanguage(cfg.Scraper.AcceptLanguage)
	return client
}

func newScraper(client scraper.DownloadClient) *scraper.Scraper {
	return scraper.NewScraper(client, scraper.Options{
		MaxProducts:   cfg.Scraper.MaxProducts,
		MinConfidence: cfg.Scraper.MinConfidence,
	})
}

func newSearcher(fetcher serp.Fetcher) serp.Searcher {
	return serp.NewDuckDuckGo(fetcher, cfg.Serp.Endpoint, cfg.Serp.Region)
}

func newScrapeCache() *storage.MemoryCache[scraper.ScrapeResult] {
	return storage.NewMemoryCache[scraper.ScrapeResult](cfg.Storage.CacheSize, cfg.Storage.CacheTTL)
}
