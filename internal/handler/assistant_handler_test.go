package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"egstify/internal/domain"
	"egstify/internal/handler"
	"egstify/internal/port"
	"egstify/internal/service"
	"egstify/mocks"
)

func TestAssistantHandler_Relay(t *testing.T) {
	mockSvc := new(mocks.MockAssistantService)
	h := handler.NewAssistantHandler(mockSvc)
	mockSvc.On("Ask", mock.Anything, port.TaxQuery{Query: "When is GSTR-3B due?", Context: "monthly"}).
		Return(&port.TaxAnswer{Response: "The 20th.", Source: "IBM Granite"}, nil)

	c, w := newJSONContext(t, http.MethodPost, "/granite", handler.GraniteRequest{Query: "When is GSTR-3B due?", Context: "monthly"})
	h.Relay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"response": "The 20th.", "source": "IBM Granite"}, resp)
	mockSvc.AssertExpectations(t)
}

func TestAssistantHandler_Relay_UpstreamError(t *testing.T) {
	mockSvc := new(mocks.MockAssistantService)
	h := handler.NewAssistantHandler(mockSvc)
	mockSvc.On("Ask", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", domain.ErrAssistantUnavailable, errors.New("401")))

	c, w := newJSONContext(t, http.MethodPost, "/granite", handler.GraniteRequest{Query: "rates?"})
	h.Relay(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.GraniteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "I encountered an error processing your query. Please try again later.", resp.Response)
	assert.Empty(t, resp.Source)
}

func TestAssistantHandler_Relay_EmptyQuery(t *testing.T) {
	mockSvc := new(mocks.MockAssistantService)
	h := handler.NewAssistantHandler(mockSvc)
	mockSvc.On("Ask", mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError([]string{"Query is required"}))

	c, w := newJSONContext(t, http.MethodPost, "/granite", handler.GraniteRequest{})
	h.Relay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.GraniteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Query is required", resp.Error)
}

func TestAssistantHandler_Chat(t *testing.T) {
	mockSvc := new(mocks.MockAssistantService)
	h := handler.NewAssistantHandler(mockSvc)
	mockSvc.On("Chat", "what is the gst rate?").Return(&service.ChatReply{Response: "rates...", Topic: "gst_rate"})

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/chat", handler.ChatRequest{Message: "what is the gst rate?"})
	h.Chat(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	assert.Equal(t, "gst_rate", data["topic"])
}

func TestAssistantHandler_Chat_MissingMessage(t *testing.T) {
	mockSvc := new(mocks.MockAssistantService)
	h := handler.NewAssistantHandler(mockSvc)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/chat", map[string]string{})
	h.Chat(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Chat", mock.Anything)
}
