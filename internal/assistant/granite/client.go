// Package granite relays tax questions to an IBM Granite text-generation endpoint.
package granite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"egstify/internal/config"
	"egstify/internal/port"
	"egstify/internal/upstream"
)

// Source is reported on every answer produced by this client.
const Source = "IBM Granite"

const provider = "granite"

// Client implements port.TaxAssistant against a Granite generation API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Granite client from cfg.
func NewClient(cfg *config.AssistantConfig) *Client {
	model := cfg.ModelID
	if model == "" {
		model = "granite-base"
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: cfg.URL,
		client:   upstream.NewClient(cfg.TimeoutSecs, 60),
	}
}

type generationParams struct {
	Temperature       float64 `json:"temperature"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

type generationRequest struct {
	ModelID    string           `json:"model_id"`
	Inputs     []string         `json:"inputs"`
	Parameters generationParams `json:"parameters"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// BuildPrompt frames query for the model. A non-empty context is appended
// as an extra hint.
func BuildPrompt(query, queryContext string) string {
	var b strings.Builder
	b.WriteString("As TaxGenie, an expert on Indian GST and tax compliance, please answer the following query:\n")
	b.WriteString(query)
	b.WriteString("\n\n")
	if c := strings.TrimSpace(queryContext); c != "" {
		b.WriteString("Context: ")
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	b.WriteString("Consider the latest GST regulations, tax laws, and compliance requirements in your response.")
	return b.String()
}

func (c *Client) Ask(ctx context.Context, q port.TaxQuery) (*port.TaxAnswer, error) {
	bodyBytes, err := json.Marshal(generationRequest{
		ModelID: c.model,
		Inputs:  []string{BuildPrompt(q.Query, q.Context)},
		Parameters: generationParams{
			Temperature:       0.2,
			MaxNewTokens:      500,
			RepetitionPenalty: 1.1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := upstream.Do(c.client, req, provider)
	if err != nil {
		return nil, err
	}

	var resp generationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", err, upstream.Truncate(string(respBody), 200))
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("empty response from %s API", provider)
	}

	return &port.TaxAnswer{
		Response: strings.TrimSpace(resp.Results[0].GeneratedText),
		Source:   Source,
	}, nil
}
