package handler

import "egstify/internal/domain"

// Request and response bodies referenced by the swag annotations.

// --- Request Types ---

// CalculateRequest is a single product row to price.
type CalculateRequest struct {
	Name        string          `json:"name" example:"Laptop Bag"`
	Description string          `json:"description" example:"Black, 15 inch"`
	Category    domain.Category `json:"category" example:"Electronics"`
	Price       float64         `json:"price" example:"500"`
	Quantity    int             `json:"quantity" example:"2"`
}

// VerifyRequest names the invoice to look up on the GST portal.
type VerifyRequest struct {
	InvoiceNumber string `json:"invoiceNumber" example:"INV-1001"`
}

// GraniteRequest is a free-form tax question for the relay.
type GraniteRequest struct {
	Query   string `json:"query" example:"When is GSTR-3B due?"`
	Context string `json:"context" example:"Monthly filer in Maharashtra"`
}

// ChatRequest is a chat message for the rule-based assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required" example:"What is the GST rate for books?"`
}

// --- Response Types ---

// GraniteResponse is the relay reply. It is not wrapped in the envelope.
type GraniteResponse struct {
	Response string `json:"response" example:"GSTR-3B is due on the 20th of the following month."`
	Source   string `json:"source,omitempty" example:"IBM Granite"`
	Error    string `json:"error,omitempty"`
}

// CalculateResponse is a priced line item with display strings.
type CalculateResponse struct {
	domain.LineItem
	GSTAmountDisplay   string `json:"gstAmountDisplay" example:"₹180.00"`
	TotalAmountDisplay string `json:"totalAmountDisplay" example:"₹1,180.00"`
}

// ValidateResponse lists validation messages in check order.
type ValidateResponse struct {
	Valid  bool     `json:"valid" example:"false"`
	Errors []string `json:"errors"`
}

// Response is the generic envelope used in swag annotations.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// ErrorResponse is the envelope returned on failure.
type ErrorResponse struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
