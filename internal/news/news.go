// Package news provides the GST news feed fallback and the static list of
// tax reference documents.
package news

import (
	"time"

	"egstify/internal/domain"
)

var taxDocuments = []domain.TaxDocument{
	{
		Title:       "GST Rate Schedule",
		Description: "Complete list of GST rates for different categories of goods and services",
		URL:         "https://cbic-gst.gov.in/pdf/gst-rate-schedule.pdf",
	},
	{
		Title:       "GSTR-1 Filing Guide",
		Description: "Step by step guide for filing GSTR-1 returns",
		URL:         "https://cbic-gst.gov.in/pdf/gstr1-guide.pdf",
	},
	{
		Title:       "GSTR-3B Filing Guide",
		Description: "Comprehensive guide for filing GSTR-3B returns",
		URL:         "https://cbic-gst.gov.in/pdf/gstr3b-guide.pdf",
	},
}

// TaxDocuments returns the reference documents in display order.
func TaxDocuments() []domain.TaxDocument {
	out := make([]domain.TaxDocument, len(taxDocuments))
	copy(out, taxDocuments)
	return out
}

// FallbackArticles is served when the news source is unreachable.
func FallbackArticles(now time.Time) []domain.NewsArticle {
	published := now.UTC().Format(time.RFC3339)
	return []domain.NewsArticle{
		{
			Title:       "GST Council Announces New Tax Rates",
			Description: "The GST Council has announced revised tax rates for several categories of goods and services...",
			URL:         "#",
			PublishedAt: published,
		},
		{
			Title:       "E-invoicing Mandatory for Businesses",
			Description: "E-invoicing under GST will be mandatory for businesses with turnover exceeding ₹5 crore...",
			URL:         "#",
			PublishedAt: published,
		},
	}
}
