package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"egstify/internal/domain"
	"egstify/internal/handler"
	"egstify/internal/service"
	"egstify/mocks"
)

func processedInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber:        "INV-1001",
		InvoiceDate:          "2024-03-01",
		CustomerGSTIN:        "27AAPFU0939F1ZV",
		Items:                []domain.LineItem{{Name: "Chair", Category: domain.CategoryFurniture, Price: 1000, Quantity: 1, Amount: 1000, GSTRate: 18, GSTAmount: 180, TotalAmount: 1180}},
		TotalAmount:          1180,
		GSTAmount:            180,
		Status:               domain.InvoiceStatusProcessed,
		ReconciliationStatus: domain.ReconciliationStatusPending,
		IRN:                  "abc",
		ValidationErrors:     []string{},
	}
}

func TestInvoiceHandler_Validate_ReturnsMessages(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	mockSvc.On("Validate", mock.AnythingOfType("*domain.Invoice")).
		Return([]string{"Customer GSTIN is required", "At least one item is required"})

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/validate", map[string]interface{}{"invoiceNumber": "INV-1"})
	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, []interface{}{"Customer GSTIN is required", "At least one item is required"}, data["errors"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Validate_Clean(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Validate", mock.AnythingOfType("*domain.Invoice")).Return(nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/validate", processedInvoice())
	h.Validate(c)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, []interface{}{}, data["errors"])
}

func TestInvoiceHandler_Submit_Created(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	input := service.SubmitInvoiceInput{
		InvoiceNumber: "INV-1001",
		CustomerGSTIN: "27AAPFU0939F1ZV",
		Products:      []domain.Product{{Name: "Chair", Category: domain.CategoryFurniture, Price: 1000, Quantity: 1}},
	}
	mockSvc.On("Submit", mock.Anything, input).Return(processedInvoice(), nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices", input)
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "processed", data["status"])
	assert.Equal(t, "abc", data["irn"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Submit_ValidationFailure(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	failed := processedInvoice()
	failed.Status = domain.InvoiceStatusError
	failed.IRN = ""
	failed.ValidationErrors = []string{"Invalid GSTIN format"}
	mockSvc.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitInvoiceInput")).
		Return(failed, domain.NewValidationError(failed.ValidationErrors))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices", map[string]interface{}{"customerGSTIN": "bad"})
	h.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Equal(t, []string{"Invalid GSTIN format"}, resp.Error.Details)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "error", data["status"])
}

func TestInvoiceHandler_Submit_IssuerFailure(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	failed := processedInvoice()
	failed.Status = domain.InvoiceStatusError
	mockSvc.On("Submit", mock.Anything, mock.Anything).
		Return(failed, fmt.Errorf("%w: %w", domain.ErrIRNIssueFailed, errors.New("portal down")))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices", map[string]interface{}{})
	h.Submit(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "IRN_ISSUE_FAILED", decodeEnvelope(t, w).Error.Code)
}

func TestInvoiceHandler_Submit_InvalidLineItem(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidLineItem)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices", map[string]interface{}{})
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "INVALID_LINE_ITEM", resp.Error.Code)
}

func TestInvoiceHandler_Verify(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Verify", mock.Anything, "INV-42").Return(&domain.VerificationResult{
		Status:  domain.VerificationStatusSuccess,
		Message: "Invoice verified successfully. IRN: abc",
		Invoice: processedInvoice(),
	}, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/verify", handler.VerifyRequest{InvoiceNumber: "INV-42"})
	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "success", data["status"])
	assert.Equal(t, "Invoice verified successfully. IRN: abc", data["message"])
}

func TestInvoiceHandler_Verify_MissingNumber(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Verify", mock.Anything, "").
		Return(nil, domain.NewValidationError([]string{"Invoice number is required"}))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/verify", handler.VerifyRequest{})
	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invoice number is required", decodeEnvelope(t, w).Error.Message)
}

func TestInvoiceHandler_Reconcile_WrongStatus(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Reconcile", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Return(nil, fmt.Errorf("reconciling: %w", domain.ErrInvalidStatusTransition))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/reconcile", map[string]interface{}{"status": "pending"})
	h.Reconcile(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", decodeEnvelope(t, w).Error.Code)
}

func TestInvoiceHandler_Reconcile(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	reconciled := processedInvoice()
	reconciled.ReconciliationStatus = domain.ReconciliationStatusReconciled
	mockSvc.On("Reconcile", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(reconciled, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/reconcile", processedInvoice())
	h.Reconcile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "reconciled", data["reconciliationStatus"])
}

func TestInvoiceHandler_PDF_Streams(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/pdf", processedInvoice())
	h.PDF(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-1001.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
	mockSvc.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_PDF_Archive(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Archive", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(&service.ArchiveResult{
		Key:         "invoices/2024/03/x-invoice-INV-1001.pdf",
		DownloadURL: "https://bucket/x",
		ExpiresIn:   3600,
	}, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/pdf?archive=true", processedInvoice())
	h.PDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "https://bucket/x", data["downloadUrl"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_PDF_ArchiveDisabled(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	mockSvc.On("Archive", mock.Anything, mock.Anything).Return(nil, domain.ErrArchiveDisabled)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/pdf?archive=true", processedInvoice())
	h.PDF(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "ARCHIVE_DISABLED", decodeEnvelope(t, w).Error.Code)
}
