package mock

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"egstify/internal/domain"
	"egstify/internal/port"
)

// DefaultMatchRatio is the share of invoices found in filed returns.
const DefaultMatchRatio = 0.7

type matcher struct {
	latency time.Duration
	ratio   float64
	roll    func() float64
}

// NewMatcher creates a ReturnMatcher that finds an invoice in the filed
// returns with probability ratio.
func NewMatcher(latency time.Duration, ratio float64) port.ReturnMatcher {
	return &matcher{latency: latency, ratio: ratio, roll: rand.Float64}
}

func (m *matcher) Match(ctx context.Context, _ *domain.Invoice) (bool, error) {
	if err := wait(ctx, m.latency); err != nil {
		return false, fmt.Errorf("mock.Match: %w", err)
	}
	return m.roll() < m.ratio, nil
}
