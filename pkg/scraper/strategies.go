package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy is one way of locating product names in a document. Match returns raw
// element texts, or nothing when the strategy does not apply.
type Strategy struct {
	Name  string
	Match func(doc *goquery.Document) []string
}

// SelectorStrategy matches a CSS selector and returns the text of every hit.
func SelectorStrategy(selector string) Strategy {
	return Strategy{
		Name: selector,
		Match: func(doc *goquery.Document) []string {
			var texts []string
			doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
				texts = append(texts, s.Text())
			})
			return texts
		},
	}
}

func selectorStrategies(selectors ...string) []Strategy {
	out := make([]Strategy, len(selectors))
	for i, sel := range selectors {
		out[i] = SelectorStrategy(sel)
	}
	return out
}

// Ordered by how often each template shows up in the wild.
var platformStrategies = map[Platform][]Strategy{
	PlatformWooCommerce: selectorStrategies(
		".woocommerce-loop-product__title",
		".woocommerce-loop-product__title a",
		"li.product .product-title",
		".product-title",
		".product-title a",
		"h2.woocommerce-loop-product__title",
	),
	PlatformShopify: selectorStrategies(
		".product-card__title",
		".product-card__name",
		".product-item__title",
		".product__title",
		".product-title",
		"h3.card__heading a",
		".card__heading a",
		".product-card h3 a",
		".product-grid-item__title",
		"[data-product-title]",
	),
	PlatformMagento: selectorStrategies(
		".product-item-name",
		".product-item-name a",
		".product-item-link",
		".product.name a",
		".product-name a",
		"h2.product-name",
		".product-info-main .page-title",
	),
	PlatformPrestaShop: selectorStrategies(
		".product-title",
		".product-title a",
		"h3.product-name a",
		".product-miniature .product-title",
		"h2.product-name",
	),
}

var genericStrategies = append(selectorStrategies(
	".product-title",
	".product-name",
	".product h2",
	".product h3",
	"h2.product-title",
	"h3.product-title",
	"[class*='product-title']",
	"[class*='product-name']",
	".products h2 a",
	".products h3 a",
	".product-card__title",
	".product-item__name",
	"li.product h2",
	"li.product h3",
	".card-title a",
	"article.product h2",
	"[data-product-name]",
), jsonLDStrategy())

// cascade returns the strategies for platform: its own first, then the generic ones,
// skipping generic selectors the platform list already tried.
func cascade(platform Platform) []Strategy {
	specific := platformStrategies[platform]
	seen := make(map[string]bool, len(specific))
	out := make([]Strategy, 0, len(specific)+len(genericStrategies))
	for _, s := range specific {
		seen[s.Name] = true
		out = append(out, s)
	}
	for _, s := range genericStrategies {
		if !seen[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// jsonLDStrategy reads Product names from schema.org JSON-LD blocks, which many
// themes emit even when their visible markup is unrecognizable.
func jsonLDStrategy() Strategy {
	return Strategy{
		Name: "json-ld:Product",
		Match: func(doc *goquery.Document) []string {
			var names []string
			doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
				var payload interface{}
				if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
					return
				}
				names = append(names, productNames(payload)...)
			})
			return names
		},
	}
}

func productNames(node interface{}) []string {
	var names []string
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			names = append(names, productNames(item)...)
		}
	case map[string]interface{}:
		if isProductType(v["@type"]) {
			if name, ok := v["name"].(string); ok {
				names = append(names, name)
			}
		}
		for _, key := range []string{"@graph", "itemListElement", "item"} {
			if child, ok := v[key]; ok {
				names = append(names, productNames(child)...)
			}
		}
	}
	return names
}

func isProductType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Product")
	case []interface{}:
		for _, item := range v {
			if isProductType(item) {
				return true
			}
		}
	}
	return false
}
