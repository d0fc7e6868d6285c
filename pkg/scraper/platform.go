package scraper

import "strings"

// Platform is the page-building platform guessed from markup fingerprints.
type Platform string

const (
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformMagento     Platform = "magento"
	PlatformPrestaShop  Platform = "prestashop"
	PlatformGeneric     Platform = "generic"
)

type fingerprint struct {
	platform Platform
	markers  []string
}

// Checked in order, first hit wins. Markers are matched against lowercased markup.
// Plain "mage" is not a marker since it matches "image".
var fingerprints = []fingerprint{
	{PlatformShopify, []string{"cdn.shopify.com", "shopify"}},
	{PlatformWooCommerce, []string{"woocommerce", "wc-block"}},
	{PlatformMagento, []string{"magento", "data-mage-init", "mage/"}},
	{PlatformPrestaShop, []string{"prestashop"}},
}

// DetectPlatform scans markup case-insensitively for platform fingerprints.
func DetectPlatform(markup string) Platform {
	lower := strings.ToLower(markup)
	for _, fp := range fingerprints {
		for _, marker := range fp.markers {
			if strings.Contains(lower, marker) {
				return fp.platform
			}
		}
	}
	return PlatformGeneric
}
