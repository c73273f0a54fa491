package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindemann/menucard-importer/internal/common"
)

func TestNewClient_ProviderResolution(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  error
		wantType any
	}{
		{
			name:     "openai",
			cfg:      Config{Provider: "openai", APIKey: "sk-test"},
			wantType: &OpenAIClient{},
		},
		{
			name:     "openai mixed case and padding",
			cfg:      Config{Provider: "  OpenAI ", APIKey: "sk-test"},
			wantType: &OpenAIClient{},
		},
		{
			name:     "reserved placeholder",
			cfg:      Config{Provider: "reserved"},
			wantType: &reservedClient{},
		},
		{
			name:    "openai without api key",
			cfg:     Config{Provider: "openai"},
			wantErr: common.ErrConfiguration,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "llama-local", APIKey: "x"},
			wantErr: common.ErrConfiguration,
		},
		{
			name:    "empty provider",
			cfg:     Config{},
			wantErr: common.ErrConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg, nil)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, client)
		})
	}
}

func TestReservedClient_NotImplemented(t *testing.T) {
	client, err := NewClient(Config{Provider: "reserved"}, nil)
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "anything", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCompletion)
}

func TestOpenAIClient_GenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  [{\"name\":\"Cola\"}]  "}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	out, err := client.GenerateText(context.Background(), "structure this menu", Options{})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Cola"}]`, out, "response content is trimmed")
}

func TestOpenAIClient_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "prompt", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCompletion)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "prompt", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCompletion)
}
