package services

import (
	"strconv"
	"strings"
)

const (
	// currencySuffix is appended by the storefront to every price label.
	currencySuffix = "руб."
	// modelDisplayLimit caps model names shown in listings.
	modelDisplayLimit = 30
)

// priceCleaner strips the noise the storefront wraps around the numeric
// price: regular and non-breaking spaces plus the currency suffix.
var priceCleaner = strings.NewReplacer(" ", "", " ", "", currencySuffix, "")

// ParsePrice converts locale-formatted price text ("89 990 руб.") to a
// whole-unit integer. Empty, non-numeric or negative input yields 0,
// the "price not recovered" sentinel.
func ParsePrice(raw string) int64 {
	cleaned := priceCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	price, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// FormatPrice renders a price as a grouped-thousands display string with
// the currency suffix: 1234567 -> "1 234 567 руб.". Shared by ingestion
// logging and the catalog read path.
func FormatPrice(price int64) string {
	digits := strconv.FormatInt(price, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, " ") + " " + currencySuffix
}

// AbsoluteURL prefixes a relative resource path with the site origin.
// Already-absolute URLs and empty strings pass through unchanged.
func AbsoluteURL(base, raw string) string {
	if raw == "" || strings.HasPrefix(raw, "http") {
		return raw
	}
	return base + raw
}

// Dedupe removes duplicates and empty entries from a variant option
// list, preserving first-seen order.
func Dedupe(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	result := make([]string, 0, len(options))
	for _, opt := range options {
		if opt == "" {
			continue
		}
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		result = append(result, opt)
	}
	return result
}

// ShortModel shortens long model names for listing views, appending an
// ellipsis marker past the display limit. Rune-aware so Cyrillic names
// are not cut mid-character.
func ShortModel(model string) string {
	runes := []rune(model)
	if len(runes) <= modelDisplayLimit {
		return model
	}
	return string(runes[:modelDisplayLimit]) + "..."
}
