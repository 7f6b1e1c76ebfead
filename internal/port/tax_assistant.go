package port

import "context"

// TaxQuery is a free-form tax question with optional context.
type TaxQuery struct {
	Query   string
	Context string
}

// TaxAnswer is a response from a tax assistant.
type TaxAnswer struct {
	Response string
	Source   string
}

// TaxAssistant answers tax questions.
type TaxAssistant interface {
	Ask(ctx context.Context, q TaxQuery) (*TaxAnswer, error)
}
