// Package gst holds the GST rate table and the line-item arithmetic.
package gst

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"egstify/internal/domain"
)

// MaxLineTotal bounds a single line total so every derived figure, and the
// sums built from them, stay finite float64 values.
const MaxLineTotal = 1e15

var (
	hundred      = decimal.NewFromInt(100)
	maxLineTotal = decimal.NewFromFloat(MaxLineTotal)
)

// Calculate derives the GST rate, tax amount and line total for a product.
//
//	taxAmount = price * quantity * rate / 100
//	lineTotal = price * quantity + taxAmount
func Calculate(p domain.Product) (domain.LineItem, error) {
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 || p.Quantity < 1 {
		return domain.LineItem{}, fmt.Errorf("calculating %q: %w", p.Name, domain.ErrInvalidLineItem)
	}

	rate, _ := RateFor(p.Category)

	amount := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
	tax := amount.Mul(decimal.NewFromFloat(rate)).Div(hundred)
	total := amount.Add(tax)
	if total.GreaterThan(maxLineTotal) {
		return domain.LineItem{}, fmt.Errorf("calculating %q: line total exceeds %.0f: %w", p.Name, MaxLineTotal, domain.ErrInvalidLineItem)
	}

	return domain.LineItem{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Amount:      amount.InexactFloat64(),
		GSTRate:     rate,
		GSTAmount:   tax.InexactFloat64(),
		TotalAmount: total.InexactFloat64(),
	}, nil
}

// CalculateAll runs Calculate over every product, stopping at the first invalid row.
func CalculateAll(products []domain.Product) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(products))
	for i := range products {
		item, err := Calculate(products[i])
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Totals sums the line totals and GST amounts of items.
func Totals(items []domain.LineItem) (total, gstAmount float64) {
	t, g := decimal.Zero, decimal.Zero
	for i := range items {
		t = t.Add(decimal.NewFromFloat(items[i].TotalAmount))
		g = g.Add(decimal.NewFromFloat(items[i].GSTAmount))
	}
	return t.InexactFloat64(), g.InexactFloat64()
}

// Round2 rounds an amount half away from zero to 2 decimal places for display.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
