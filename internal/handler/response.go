package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"egstify/internal/domain"
	"egstify/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Details lists individual
// validation messages in order.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvoiceInvalid):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", "invoice failed validation"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", "price must be positive and quantity at least 1"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION", "invoice is not in a state that allows this action"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrIRNIssueFailed):
		return http.StatusBadGateway, "IRN_ISSUE_FAILED", "IRN could not be issued; please try again"
	case errors.Is(err, domain.ErrVerificationFailed):
		return http.StatusBadGateway, "VERIFICATION_FAILED", "Failed to verify invoice with MasterGST API"
	case errors.Is(err, domain.ErrReconciliationFailed):
		return http.StatusBadGateway, "RECONCILIATION_FAILED", "GST return data could not be checked; please try again"
	case errors.Is(err, domain.ErrAssistantUnavailable):
		return http.StatusBadGateway, "ASSISTANT_UNAVAILABLE", "I encountered an error processing your query. Please try again later."
	case errors.Is(err, domain.ErrArchiveDisabled):
		return http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "invoice archiving is not configured"
	case errors.Is(err, domain.ErrArchiveFailed):
		return http.StatusBadGateway, "ARCHIVE_FAILED", "invoice archive upload failed"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, "LEDGER_UNAVAILABLE", "sales ledger is unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "the request timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	HandleErrorWithData(c, err, nil)
}

// HandleErrorWithData is HandleError that also returns data, such as an
// invoice in its final error status.
func HandleErrorWithData(c *gin.Context, err error, data interface{}) {
	status, code, msg := MapDomainError(err)
	apiErr := &APIError{Code: code, Message: msg}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		apiErr.Details = vErr.Messages
	}

	if status >= 500 {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, APIResponse{Success: false, Data: data, Error: apiErr})
}
