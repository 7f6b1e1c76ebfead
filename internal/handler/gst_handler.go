package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"egstify/internal/domain"
	"egstify/internal/gst"
)

// GSTHandler serves the rate table and single line-item pricing.
type GSTHandler struct{}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler() *GSTHandler {
	return &GSTHandler{}
}

// Rates handles GET /api/v1/gst/rates
// @Summary List GST rates
// @Description Returns the category rate table in display order
// @Tags gst
// @Produce json
// @Success 200 {object} Response{data=[]gst.CategoryRate}
// @Router /gst/rates [get]
func (h *GSTHandler) Rates(c *gin.Context) {
	RespondOK(c, gst.Rates())
}

// Calculate handles POST /api/v1/gst/calculate
// @Summary Calculate GST for a product
// @Tags gst
// @Accept json
// @Produce json
// @Param body body CalculateRequest true "Product row"
// @Success 200 {object} Response{data=CalculateResponse}
// @Failure 400 {object} ErrorResponse
// @Router /gst/calculate [post]
func (h *GSTHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := gst.Calculate(domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLineItem) {
			RespondError(c, http.StatusBadRequest, "INVALID_LINE_ITEM", err.Error())
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, CalculateResponse{
		LineItem:           item,
		GSTAmountDisplay:   gst.FormatRupees(item.GSTAmount),
		TotalAmountDisplay: gst.FormatRupees(item.TotalAmount),
	})
}
