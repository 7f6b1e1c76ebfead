package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"egstify/internal/assistant"
	"egstify/internal/domain"
	"egstify/internal/metrics"
	"egstify/internal/port"
)

// ChatReply is the rule-based answer to a chat message.
type ChatReply struct {
	Response string `json:"response"`
	Topic    string `json:"topic,omitempty"`
}

// AssistantService answers tax questions.
type AssistantService interface {
	Chat(message string) *ChatReply
	Ask(ctx context.Context, q port.TaxQuery) (*port.TaxAnswer, error)
}

type assistantService struct {
	upstream port.TaxAssistant
	provider string
}

// NewAssistantService creates an AssistantService. Ask relays to upstream,
// named provider in metrics and logs.
func NewAssistantService(upstream port.TaxAssistant, provider string) AssistantService {
	return &assistantService{upstream: upstream, provider: provider}
}

func (s *assistantService) Chat(message string) *ChatReply {
	answer, topic := assistant.Respond(message)
	outcome := "matched"
	if topic == "" {
		outcome = "fallback"
	}
	metrics.AssistantQueries.WithLabelValues("rules", outcome).Inc()
	return &ChatReply{Response: answer, Topic: topic}
}

func (s *assistantService) Ask(ctx context.Context, q port.TaxQuery) (*port.TaxAnswer, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, domain.NewValidationError([]string{"Query is required"})
	}

	ans, err := s.upstream.Ask(ctx, q)
	if err != nil {
		metrics.AssistantQueries.WithLabelValues(s.provider, "error").Inc()
		metrics.UpstreamFailures.WithLabelValues(s.provider).Inc()
		zap.L().Error("tax assistant query failed", zap.String("provider", s.provider), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrAssistantUnavailable, err)
	}
	metrics.AssistantQueries.WithLabelValues(s.provider, "ok").Inc()
	return ans, nil
}
