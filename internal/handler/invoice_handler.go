package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"egstify/internal/domain"
	"egstify/internal/pdf"
	"egstify/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Validate handles POST /api/v1/invoices/validate
// @Summary Validate an invoice
// @Description Runs every invoice check and returns the failing messages in order
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body domain.Invoice true "Invoice"
// @Success 200 {object} Response{data=ValidateResponse}
// @Failure 400 {object} ErrorResponse
// @Router /invoices/validate [post]
func (h *InvoiceHandler) Validate(c *gin.Context) {
	var inv domain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	msgs := h.invoiceService.Validate(&inv)
	if msgs == nil {
		msgs = []string{}
	}
	RespondOK(c, ValidateResponse{Valid: len(msgs) == 0, Errors: msgs})
}

// Submit handles POST /api/v1/invoices
// @Summary Submit an invoice
// @Description Prices the products, validates the invoice, issues an IRN and records the sale
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body service.SubmitInvoiceInput true "Invoice entry"
// @Success 201 {object} Response{data=domain.Invoice}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Submit(c *gin.Context) {
	var input service.SubmitInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	inv, err := h.invoiceService.Submit(c.Request.Context(), input)
	if err != nil {
		if inv != nil {
			HandleErrorWithData(c, err, inv)
			return
		}
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// Verify handles POST /api/v1/invoices/verify
// @Summary Verify an invoice on the GST portal
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Invoice number"
// @Success 200 {object} Response{data=domain.VerificationResult}
// @Failure 400 {object} ErrorResponse
// @Router /invoices/verify [post]
func (h *InvoiceHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.invoiceService.Verify(c.Request.Context(), req.InvoiceNumber)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", vErr.Messages[0])
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Reconcile handles POST /api/v1/invoices/reconcile
// @Summary Reconcile a processed invoice against filed returns
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body domain.Invoice true "Processed invoice"
// @Success 200 {object} Response{data=domain.Invoice}
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /invoices/reconcile [post]
func (h *InvoiceHandler) Reconcile(c *gin.Context) {
	var inv domain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	out, err := h.invoiceService.Reconcile(c.Request.Context(), &inv)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// PDF handles POST /api/v1/invoices/pdf
// @Summary Render an invoice as PDF
// @Description Streams the PDF, or with archive=true stores it and returns a download URL
// @Tags invoices
// @Accept json
// @Produce application/pdf
// @Param archive query bool false "Archive to object storage"
// @Param body body domain.Invoice true "Invoice"
// @Success 200 {file} binary
// @Failure 503 {object} ErrorResponse
// @Router /invoices/pdf [post]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	var inv domain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	archive, _ := strconv.ParseBool(c.Query("archive"))
	if archive {
		result, err := h.invoiceService.Archive(c.Request.Context(), &inv)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, result)
		return
	}

	var buf bytes.Buffer
	if err := pdf.RenderInvoice(&buf, &inv); err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(&inv)))
	c.Data(http.StatusOK, pdf.ContentType, buf.Bytes())
}
