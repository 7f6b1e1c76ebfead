package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"egstify/internal/domain"
	"egstify/internal/port"
	"egstify/internal/service"
)

// relayErrorMessage is shown to the user whenever the relay cannot answer.
const relayErrorMessage = "I encountered an error processing your query. Please try again later."

// AssistantHandler handles the tax assistant endpoints.
type AssistantHandler struct {
	assistantService service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Relay handles POST /granite
// @Summary Ask the tax assistant
// @Description Relays a tax question to the configured assistant. The reply is not enveloped.
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body GraniteRequest true "Tax question"
// @Success 200 {object} GraniteResponse
// @Failure 400 {object} GraniteResponse
// @Failure 500 {object} GraniteResponse
// @Router /granite [post]
func (h *AssistantHandler) Relay(c *gin.Context) {
	var req GraniteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GraniteResponse{Response: relayErrorMessage, Error: "invalid request body"})
		return
	}

	ans, err := h.assistantService.Ask(c.Request.Context(), port.TaxQuery{Query: req.Query, Context: req.Context})
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, GraniteResponse{Response: relayErrorMessage, Error: vErr.Messages[0]})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, GraniteResponse{Response: relayErrorMessage})
		return
	}

	c.JSON(http.StatusOK, GraniteResponse{Response: ans.Response, Source: ans.Source})
}

// Chat handles POST /api/v1/chat
// @Summary Chat with the rule-based assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body ChatRequest true "Chat message"
// @Success 200 {object} Response{data=service.ChatReply}
// @Failure 400 {object} ErrorResponse
// @Router /chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}
	RespondOK(c, h.assistantService.Chat(req.Message))
}
