package granite_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egstify/internal/assistant/granite"
	"egstify/internal/config"
	"egstify/internal/port"
	"egstify/internal/upstream"
)

func newTestClient(serverURL string) *granite.Client {
	return granite.NewClient(&config.AssistantConfig{
		Provider:    "granite",
		URL:         serverURL,
		APIKey:      "test-api-key",
		TimeoutSecs: 5,
	})
}

func TestClient_Ask_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "granite-base", reqBody["model_id"])
		inputs := reqBody["inputs"].([]interface{})
		require.Len(t, inputs, 1)
		assert.Contains(t, inputs[0], "What is ITC?")
		params := reqBody["parameters"].(map[string]interface{})
		assert.Equal(t, 0.2, params["temperature"])
		assert.Equal(t, float64(500), params["max_new_tokens"])
		assert.Equal(t, 1.1, params["repetition_penalty"])

		_, _ = w.Write([]byte(`{"results":[{"generated_text":"  Input tax credit lets you offset GST paid.  "}]}`))
	}))
	defer server.Close()

	ans, err := newTestClient(server.URL).Ask(context.Background(), port.TaxQuery{Query: "What is ITC?"})

	require.NoError(t, err)
	assert.Equal(t, "Input tax credit lets you offset GST paid.", ans.Response)
	assert.Equal(t, granite.Source, ans.Source)
}

func TestClient_Ask_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Ask(context.Background(), port.TaxQuery{Query: "q"})

	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestClient_Ask_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Ask(context.Background(), port.TaxQuery{Query: "q"})

	assert.ErrorContains(t, err, "empty response")
}

func TestClient_Ask_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Ask(context.Background(), port.TaxQuery{Query: "q"})

	assert.ErrorContains(t, err, "unmarshaling response")
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"As TaxGenie, an expert on Indian GST and tax compliance, please answer the following query:\nWhat is GST?\n\nConsider the latest GST regulations, tax laws, and compliance requirements in your response.",
		granite.BuildPrompt("What is GST?", ""))

	withContext := granite.BuildPrompt("What is GST?", "GST and Tax compliance in India")
	assert.Contains(t, withContext, "\n\nContext: GST and Tax compliance in India\n\n")
}
