package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egstify/internal/assistant"
	"egstify/internal/config"
	einvoicemock "egstify/internal/einvoice/mock"
	"egstify/internal/handler"
	"egstify/internal/repository/memory"
	"egstify/internal/router"
	"egstify/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewLedgerRepo()
	ledgerSvc := service.NewLedgerService(store)
	invoiceSvc := service.NewInvoiceService(service.InvoiceDeps{
		Issuer:   einvoicemock.NewIssuer(einvoicemock.IssuerConfig{SellerGSTIN: "27AAPFU0939F1ZV"}),
		Matcher:  einvoicemock.NewMatcher(0, 1),
		Verifier: einvoicemock.NewVerifier(0),
		Ledger:   ledgerSvc,
	})

	return router.Setup(
		config.CORSConfig{AllowedOrigins: []string{"*"}},
		handler.NewHealthHandler(store),
		handler.NewGSTHandler(),
		handler.NewInvoiceHandler(invoiceSvc),
		handler.NewLedgerHandler(ledgerSvc),
		handler.NewAssistantHandler(service.NewAssistantService(assistant.Rules{}, "rules")),
		handler.NewNewsHandler(service.NewNewsService(nil, 0)),
	)
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", nil).Code)
}

func TestRouter_SubmitThenLedger(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"invoiceNumber": "INV-1001",
		"invoiceDate":   "2024-03-01",
		"customerGSTIN": "29aaaaa0000a1z5",
		"products": []map[string]interface{}{
			{"name": "Laptop Bag", "category": "Electronics", "price": 500, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 1.0, data["invoiceCount"])
	assert.Equal(t, 1180.0, data["totalSales"])
	assert.Equal(t, "₹180.00", data["gstCollectedDisplay"])
}

func TestRouter_RelayUsesRules(t *testing.T) {
	r := newEngine(t)

	w := do(r, http.MethodPost, "/granite", map[string]string{"query": "When is the due date?"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, assistant.SourceRules, resp["source"])
	assert.NotEmpty(t, resp["response"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newEngine(t)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/nope", nil).Code)
}
