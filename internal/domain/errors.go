package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidLineItem         = errors.New("price must be positive and quantity at least 1")
	ErrInvoiceInvalid          = errors.New("invoice failed validation")
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")
	ErrIRNIssueFailed          = errors.New("IRN issuance failed")
	ErrVerificationFailed      = errors.New("invoice verification failed")
	ErrReconciliationFailed    = errors.New("invoice reconciliation failed")
	ErrAssistantUnavailable    = errors.New("tax assistant unavailable")
	ErrArchiveDisabled         = errors.New("invoice archive storage is not configured")
	ErrArchiveFailed           = errors.New("invoice archive upload failed")
	ErrUnsupportedExport       = errors.New("unsupported export format")
	ErrLedgerUnavailable       = errors.New("sales ledger storage unavailable")
)

// ValidationError carries the ordered list of validation messages for an invoice.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given messages.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return ErrInvoiceInvalid.Error() + ": " + strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvoiceInvalid
}
