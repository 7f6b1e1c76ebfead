package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"egstify/internal/export"
	"egstify/internal/service"
)

// LedgerHandler exposes the running sales ledger.
type LedgerHandler struct {
	ledgerService service.LedgerService
	now           func() time.Time
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, now: time.Now}
}

// Get handles GET /api/v1/ledger
// @Summary Get the sales ledger
// @Description Returns running totals, the invoice count and the most recent invoices
// @Tags ledger
// @Produce json
// @Success 200 {object} Response{data=service.LedgerSnapshot}
// @Failure 503 {object} ErrorResponse
// @Router /ledger [get]
func (h *LedgerHandler) Get(c *gin.Context) {
	snap, err := h.ledgerService.Snapshot(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// Export handles GET /api/v1/ledger/export
// @Summary Export recent ledger invoices
// @Tags ledger
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /ledger/export [get]
func (h *LedgerHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	ledger, err := h.ledgerService.Read(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, ledger); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
