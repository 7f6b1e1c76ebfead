// Package mock simulates the e-invoicing authority: IRN issuance, GST return
// matching and invoice lookup. Nothing here talks to a real portal.
package mock

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/google/uuid"

	"egstify/internal/domain"
	"egstify/internal/port"
	"egstify/internal/validator/invoice"
)

// DefaultQRBaseURL renders the QR payload as an image.
const DefaultQRBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// ErrSimulatedFailure is returned when the configured failure rate fires.
var ErrSimulatedFailure = errors.New("simulated IRN registration failure")

// IssuerConfig tunes the simulated authority.
type IssuerConfig struct {
	SellerGSTIN string
	Latency     time.Duration
	FailureRate float64
	QRBaseURL   string
}

type issuer struct {
	cfg   IssuerConfig
	roll  func() float64
	nonce func() string
	now   func() time.Time
}

// NewIssuer creates a simulated IRNIssuer.
func NewIssuer(cfg IssuerConfig) port.IRNIssuer {
	return newIssuer(cfg, rand.Float64)
}

func newIssuer(cfg IssuerConfig, roll func() float64) *issuer {
	if cfg.QRBaseURL == "" {
		cfg.QRBaseURL = DefaultQRBaseURL
	}
	return &issuer{
		cfg:   cfg,
		roll:  roll,
		nonce: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

// Issue waits for the configured latency and returns a fresh IRN and QR
// payload for inv. It never mutates inv.
func (i *issuer) Issue(ctx context.Context, inv *domain.Invoice) (*domain.IRNResult, error) {
	if err := wait(ctx, i.cfg.Latency); err != nil {
		return nil, fmt.Errorf("mock.Issue: %w", err)
	}
	if i.cfg.FailureRate > 0 && i.roll() < i.cfg.FailureRate {
		return nil, ErrSimulatedFailure
	}

	fy, err := invoice.DeriveFinancialYear(inv.InvoiceDate)
	if err != nil {
		fy, _ = invoice.DeriveFinancialYear(i.now().Format("2006-01-02"))
	}

	return &domain.IRNResult{
		IRN:    invoice.ComputeIRNHash(i.cfg.SellerGSTIN, inv.InvoiceNumber, fy, i.nonce()),
		QRCode: QRCodeURL(i.cfg.QRBaseURL, inv.InvoiceNumber),
	}, nil
}

// QRCodeURL builds the 150x150 QR image URL encoding data.
func QRCodeURL(base, data string) string {
	return base + "?size=150x150&data=" + url.QueryEscape(data)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
