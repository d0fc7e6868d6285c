package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	body string
	err  error
}

func (c *stubClient) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if c.err != nil {
		return nil, c.err
	}
	return io.NopCloser(strings.NewReader(c.body)), nil
}

func page(head string, items ...string) string {
	return fmt.Sprintf("<html><head>%s</head><body><nav><a>Top</a></nav>%s</body></html>", head, strings.Join(items, ""))
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		markup string
		want   Platform
	}{
		{`<link href="//CDN.SHOPIFY.COM/s/files/theme.css">`, PlatformShopify},
		{`<body class="woocommerce archive">`, PlatformWooCommerce},
		{`<div data-mage-init='{}'>`, PlatformMagento},
		{`<meta name="generator" content="PrestaShop">`, PlatformPrestaShop},
		{`<img src="image.png" class="image">`, PlatformGeneric},
		{`<body class="woocommerce"><script src="cdn.shopify.com/x.js">`, PlatformShopify},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.markup), tt.markup)
	}
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"  Costume   Intero\n Nero € 29,90 ": "Costume Intero Nero",
		"Bikini Fascia 19,90 €":              "Bikini Fascia",
		"Telo Mare $ 1,234.00":               "Telo Mare",
		"Occhialini 2024":                    "Occhialini 2024",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanName(in), "input %q", in)
	}
}

func TestScrapeHTMLWooCommerce(t *testing.T) {
	markup := page(`<body class="woocommerce">`,
		`<h2 class="woocommerce-loop-product__title">Costume Intero Nero € 39,90</h2>`,
		`<h2 class="woocommerce-loop-product__title">Bikini Fascia Blu</h2>`,
		`<h2 class="woocommerce-loop-product__title">Costume   Sportivo</h2>`,
		`<h2 class="woocommerce-loop-product__title">Bikini Fascia Blu</h2>`,
		`<h2 class="woocommerce-loop-product__title">Top</h2>`,
	)

	res := NewScraper(nil, Options{}).ScrapeHTML(markup, "https://shop.example/costumi")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, PlatformWooCommerce, res.Platform)
	assert.Equal(t, ".woocommerce-loop-product__title", res.SelectorUsed)
	assert.Equal(t, []string{"Costume Intero Nero", "Bikini Fascia Blu", "Costume Sportivo"}, res.Products)
	assert.Equal(t, 3, res.TotalFound)
	assert.Empty(t, res.Error)
}

func TestScrapeHTMLSkipsSelectorBelowThreshold(t *testing.T) {
	markup := page("",
		`<div class="product-title">Costume Uno</div>`,
		`<div class="product-title">Costume Due</div>`,
		`<span class="product-name">Telo Mare Blu</span>`,
		`<span class="product-name">Telo Mare Rosso</span>`,
		`<span class="product-name">Telo Mare Verde</span>`,
	)

	res := NewScraper(nil, Options{}).ScrapeHTML(markup, "https://shop.example/")
	require.True(t, res.Success)
	assert.Equal(t, PlatformGeneric, res.Platform)
	assert.Equal(t, ".product-name", res.SelectorUsed)
	assert.Equal(t, []string{"Telo Mare Blu", "Telo Mare Rosso", "Telo Mare Verde"}, res.Products)
}

func TestScrapeHTMLFailsWhenOnlyTwoMatch(t *testing.T) {
	markup := page("",
		`<div class="product-title">Costume Uno</div>`,
		`<div class="product-title">Costume Due</div>`,
		`<div class="product-title">Costume Uno</div>`,
	)

	res := NewScraper(nil, Options{}).ScrapeHTML(markup, "https://shop.example/")
	assert.False(t, res.Success)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.SelectorUsed)
	assert.Equal(t, KindNoSelector, res.ErrorKind)
	assert.NotEmpty(t, res.Error)
}

func TestScrapeHTMLIgnoresLowerConfidence(t *testing.T) {
	markup := page("", `<span class="product-name">Home Page</span>`)

	for _, minConfidence := range []int{1, 2} {
		res := NewScraper(nil, Options{MinConfidence: minConfidence}).ScrapeHTML(markup, "https://shop.example/")
		assert.False(t, res.Success)
		assert.Empty(t, res.Products)
		assert.Equal(t, KindNoSelector, res.ErrorKind)
	}
}

func TestScrapeHTMLCapsProducts(t *testing.T) {
	markup := page(`<script src="https://cdn.shopify.com/s/app.js"></script>`,
		`<a class="product-card__title">Prodotto Uno</a>`,
		`<a class="product-card__title">Prodotto Due</a>`,
		`<a class="product-card__title">Prodotto Tre</a>`,
		`<a class="product-card__title">Prodotto Quattro</a>`,
	)

	res := NewScraper(nil, Options{MaxProducts: 2}).ScrapeHTML(markup, "https://shop.example/")
	require.True(t, res.Success)
	assert.Equal(t, PlatformShopify, res.Platform)
	assert.Equal(t, []string{"Prodotto Uno", "Prodotto Due"}, res.Products)
}

func TestScrapeHTMLJSONLD(t *testing.T) {
	ld := `<script type="application/ld+json">{"@context":"https://schema.org","@type":"ItemList",
"itemListElement":[{"@type":"ListItem","item":{"@type":"Product","name":"Pinne Corte"}},
{"@type":"ListItem","item":{"@type":"Product","name":"Maschera Snorkeling"}},
{"@type":"ListItem","item":{"@type":["Product"],"name":"Boccaglio Pro"}}]}</script>`

	res := NewScraper(nil, Options{}).ScrapeHTML(page(ld), "https://shop.example/")
	require.True(t, res.Success)
	assert.Equal(t, "json-ld:Product", res.SelectorUsed)
	assert.Equal(t, []string{"Pinne Corte", "Maschera Snorkeling", "Boccaglio Pro"}, res.Products)
}

func TestScrapeReportsTransportFailures(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{fmt.Errorf("%w: read deadline", ErrTimeout), KindTimeout},
		{fmt.Errorf("%w: dial tcp: refused", ErrConnection), KindConnection},
		{&StatusError{Code: 503}, KindHTTPStatus},
		{errors.New("weird"), KindOther},
	}
	for _, tt := range tests {
		res := NewScraper(&stubClient{err: tt.err}, Options{}).Scrape(context.Background(), "https://shop.example/x")
		assert.False(t, res.Success)
		assert.Equal(t, tt.kind, res.ErrorKind)
		assert.NotEmpty(t, res.Error)
		assert.Equal(t, "https://shop.example/x", res.URL)
	}
}

func TestScrapeFetchesAndParses(t *testing.T) {
	body := page("",
		`<li class="product"><h2>Ciabatte Piscina</h2></li>`,
		`<li class="product"><h2>Cuffia Silicone</h2></li>`,
		`<li class="product"><h2>Accappatoio Microfibra</h2></li>`,
	)
	res := NewScraper(&stubClient{body: body}, Options{}).Scrape(context.Background(), "https://shop.example/")
	require.True(t, res.Success)
	assert.Equal(t, ".product h2", res.SelectorUsed)
}

func TestFormatForPrompt(t *testing.T) {
	assert.Empty(t, FormatForPrompt(nil))
	assert.Equal(t, "### Products listed in the category:\n1. A\n2. B\n", FormatForPrompt([]string{"A", "B"}))
}
