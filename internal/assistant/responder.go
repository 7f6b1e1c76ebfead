// Package assistant answers GST questions, either from a fixed list of
// canned replies or by relaying to an external model.
package assistant

import (
	"context"
	"strings"

	"egstify/internal/port"
)

// SourceRules identifies answers produced by the built-in responder.
const SourceRules = "E-GSTify Assistant"

// FallbackAnswer is returned when no trigger matches.
const FallbackAnswer = "I can help you with GST rates, IRN generation, reconciliation, and filing deadlines. Please ask a specific question about these topics."

// Topic is one canned reply and the phrases that select it.
type Topic struct {
	Name     string
	Triggers []string
	Answer   string
}

// topics are checked in order; the first topic with a matching trigger wins.
var topics = []Topic{
	{
		Name:     "gst_rate",
		Triggers: []string{"gst rate"},
		Answer:   "GST rates vary by product category: 5%, 12%, 18%, and 28%. For specific items, please check the GST rate finder on the GST portal.",
	},
	{
		Name:     "irn_generation",
		Triggers: []string{"irn generation"},
		Answer:   "IRN (Invoice Reference Number) is generated automatically when you submit a valid invoice. Make sure all required fields are filled and the GSTIN is valid.",
	},
	{
		Name:     "reconciliation",
		Triggers: []string{"reconciliation"},
		Answer:   "Invoice reconciliation happens automatically when you generate an invoice. The system matches it with GST returns data. You can check the status in the Verification page.",
	},
	{
		Name:     "deadline",
		Triggers: []string{"deadline", "due date"},
		Answer:   "GSTR-1 is due by the 11th of the next month. GSTR-3B is due by the 20th of the next month. Late filing may result in penalties.",
	},
}

// Topics returns a copy of the ordered trigger list.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// Respond returns the canned answer for query and the name of the topic that
// matched, or FallbackAnswer and "" when nothing matches.
func Respond(query string) (answer, topic string) {
	q := strings.ToLower(query)
	for _, t := range topics {
		for _, trigger := range t.Triggers {
			if strings.Contains(q, trigger) {
				return t.Answer, t.Name
			}
		}
	}
	return FallbackAnswer, ""
}

// Rules is a TaxAssistant backed by Respond.
type Rules struct{}

// Ask answers q from the canned replies. It never fails.
func (Rules) Ask(_ context.Context, q port.TaxQuery) (*port.TaxAnswer, error) {
	answer, _ := Respond(q.Query)
	return &port.TaxAnswer{Response: answer, Source: SourceRules}, nil
}
