package handler

import (
	"github.com/gin-gonic/gin"

	"egstify/internal/service"
)

// NewsHandler serves GST news and reference documents.
type NewsHandler struct {
	newsService service.NewsService
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// Get handles GET /api/v1/news
// @Summary Get GST news
// @Description Returns recent GST articles, falling back to a built-in list, plus static tax documents
// @Tags news
// @Produce json
// @Success 200 {object} Response{data=service.NewsFeed}
// @Router /news [get]
func (h *NewsHandler) Get(c *gin.Context) {
	RespondOK(c, h.newsService.Feed(c.Request.Context()))
}
