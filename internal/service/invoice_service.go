package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"egstify/internal/domain"
	"egstify/internal/gst"
	"egstify/internal/metrics"
	"egstify/internal/pdf"
	"egstify/internal/port"
	"egstify/internal/validator/invoice"
)

// Verification messages shown to the user.
const (
	msgVerifyFailed  = "Failed to verify invoice with MasterGST API"
	msgVerifySuccess = "Invoice verified successfully. IRN: %s"
)

// SubmitInvoiceInput holds the fields entered for a new invoice.
// Empty InvoiceNumber and InvoiceDate are filled with generated defaults.
type SubmitInvoiceInput struct {
	InvoiceNumber string           `json:"invoiceNumber"`
	InvoiceDate   string           `json:"invoiceDate"`
	CustomerGSTIN string           `json:"customerGSTIN"`
	Products      []domain.Product `json:"products"`
}

// ArchiveResult locates an archived invoice PDF.
type ArchiveResult struct {
	Key         string `json:"key"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// InvoiceService drives an invoice from entry to an issued IRN.
type InvoiceService interface {
	Validate(inv *domain.Invoice) []string
	Submit(ctx context.Context, input SubmitInvoiceInput) (*domain.Invoice, error)
	Verify(ctx context.Context, invoiceNumber string) (*domain.VerificationResult, error)
	Reconcile(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	Archive(ctx context.Context, inv *domain.Invoice) (*ArchiveResult, error)
}

// InvoiceDeps are the collaborators of the invoice service. Storage may be nil,
// which disables archiving.
type InvoiceDeps struct {
	Issuer        port.IRNIssuer
	Matcher       port.ReturnMatcher
	Verifier      port.InvoiceVerifier
	Ledger        LedgerService
	Storage       port.ObjectStorage
	PresignExpiry int64
}

type invoiceService struct {
	deps InvoiceDeps
	now  func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(deps InvoiceDeps) InvoiceService {
	if deps.PresignExpiry <= 0 {
		deps.PresignExpiry = 3600
	}
	return &invoiceService{deps: deps, now: time.Now}
}

func (s *invoiceService) Validate(inv *domain.Invoice) []string {
	return invoice.Validate(inv)
}

// Submit computes line items, validates the invoice, obtains an IRN and
// records the invoice in the ledger. The returned invoice reflects the final
// status even when an error is returned, except for rejected product rows.
func (s *invoiceService) Submit(ctx context.Context, input SubmitInvoiceInput) (*domain.Invoice, error) {
	items, err := gst.CalculateAll(input.Products)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &domain.Invoice{
		InvoiceNumber:        strings.TrimSpace(input.InvoiceNumber),
		InvoiceDate:          strings.TrimSpace(input.InvoiceDate),
		CreatedAt:            now.UTC(),
		CustomerGSTIN:        strings.ToUpper(strings.TrimSpace(input.CustomerGSTIN)),
		Items:                items,
		Status:               domain.InvoiceStatusPending,
		ReconciliationStatus: domain.ReconciliationStatusPending,
		ValidationErrors:     []string{},
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%d", now.UnixMilli())
	}
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = now.Format("2006-01-02")
	}
	inv.TotalAmount, inv.GSTAmount = gst.Totals(items)

	if errs := invoice.Validate(inv); len(errs) > 0 {
		_ = inv.MarkError(errs)
		metrics.InvoicesSubmitted.WithLabelValues(string(inv.Status)).Inc()
		return inv, domain.NewValidationError(errs)
	}

	if err := s.issue(ctx, inv); err != nil {
		metrics.InvoicesSubmitted.WithLabelValues(string(inv.Status)).Inc()
		return inv, err
	}
	metrics.InvoicesSubmitted.WithLabelValues(string(inv.Status)).Inc()

	if _, err := s.deps.Ledger.Record(ctx, inv); err != nil {
		return inv, err
	}
	return inv, nil
}

// issue obtains an IRN for a validated pending invoice and moves it to
// processed, or to error when the issuer fails.
func (s *invoiceService) issue(ctx context.Context, inv *domain.Invoice) error {
	start := time.Now()
	res, err := s.deps.Issuer.Issue(ctx, inv)
	metrics.IRNLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		_ = inv.MarkError(nil)
		zap.L().Warn("IRN issuance failed",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err),
		)
		return fmt.Errorf("invoice %s: %w: %w", inv.InvoiceNumber, domain.ErrIRNIssueFailed, err)
	}
	return inv.MarkProcessed(res.IRN, res.QRCode)
}

// Verify looks up invoiceNumber, validates the returned invoice and issues
// an IRN for it. Lookup, validation and issuance failures are reported in the
// result rather than as errors.
func (s *invoiceService) Verify(ctx context.Context, invoiceNumber string) (*domain.VerificationResult, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, domain.NewValidationError([]string{"Invoice number is required"})
	}

	inv, err := s.deps.Verifier.Verify(ctx, invoiceNumber)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("verifier").Inc()
		zap.L().Warn("invoice verification failed",
			zap.String("invoice_number", invoiceNumber),
			zap.Error(err),
		)
		return &domain.VerificationResult{Status: domain.VerificationStatusError, Message: msgVerifyFailed}, nil
	}

	if errs := invoice.Validate(inv); len(errs) > 0 {
		_ = inv.MarkError(errs)
		return &domain.VerificationResult{
			Status:  domain.VerificationStatusError,
			Message: strings.Join(errs, ", "),
			Invoice: inv,
		}, nil
	}

	if err := s.issue(ctx, inv); err != nil {
		return &domain.VerificationResult{Status: domain.VerificationStatusError, Message: msgVerifyFailed}, nil
	}

	return &domain.VerificationResult{
		Status:  domain.VerificationStatusSuccess,
		Message: fmt.Sprintf(msgVerifySuccess, inv.IRN),
		Invoice: inv,
	}, nil
}

// Reconcile matches a processed invoice carrying an issued IRN against filed
// returns. An unmatched invoice is returned unchanged with reconciliation
// still pending.
func (s *invoiceService) Reconcile(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv.Status != domain.InvoiceStatusProcessed {
		return nil, fmt.Errorf("reconciling invoice %s in status %s: %w", inv.InvoiceNumber, inv.Status, domain.ErrInvalidStatusTransition)
	}
	if !invoice.IsValidIRN(inv.IRN) {
		return nil, fmt.Errorf("reconciling invoice %s without an issued IRN: %w", inv.InvoiceNumber, domain.ErrInvalidStatusTransition)
	}
	if inv.ReconciliationStatus == domain.ReconciliationStatusReconciled {
		return inv, nil
	}
	if inv.ReconciliationStatus == "" {
		inv.ReconciliationStatus = domain.ReconciliationStatusPending
	}

	matched, err := s.deps.Matcher.Match(ctx, inv)
	if err != nil {
		metrics.Reconciliations.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("invoice %s: %w: %w", inv.InvoiceNumber, domain.ErrReconciliationFailed, err)
	}
	if !matched {
		metrics.Reconciliations.WithLabelValues("unmatched").Inc()
		return inv, nil
	}

	if err := inv.MarkReconciled(); err != nil {
		return nil, err
	}
	metrics.Reconciliations.WithLabelValues("matched").Inc()
	return inv, nil
}

// Archive renders inv to PDF, stores it and returns a time-limited download URL.
func (s *invoiceService) Archive(ctx context.Context, inv *domain.Invoice) (*ArchiveResult, error) {
	if s.deps.Storage == nil {
		return nil, domain.ErrArchiveDisabled
	}

	var buf bytes.Buffer
	if err := pdf.RenderInvoice(&buf, inv); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s/%s-%s", s.now().UTC().Format("2006/01"), uuid.New().String(), pdf.Filename(inv))
	obj, err := s.deps.Storage.Put(ctx, port.ArchiveObject{
		Key:         key,
		Body:        &buf,
		ContentType: pdf.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}

	url, err := s.deps.Storage.PresignGet(ctx, obj.Key, s.deps.PresignExpiry)
	if err != nil {
		if rmErr := s.deps.Storage.Remove(ctx, obj.Key); rmErr != nil {
			zap.L().Warn("removing unreachable archive object", zap.String("key", obj.Key), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}

	return &ArchiveResult{Key: obj.Key, DownloadURL: url, ExpiresIn: s.deps.PresignExpiry}, nil
}
