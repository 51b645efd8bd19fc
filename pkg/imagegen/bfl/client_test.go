package bfl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensions(t *testing.T) {
	tests := []struct {
		ratio  string
		width  int
		height int
	}{
		{"1:1", 1024, 1024},
		{"16:9", 1408, 800},
		{"9:16", 800, 1408},
		{"3:2", 1440, 960},
		{"unknown", 1024, 1024},
		{"", 1024, 1024},
	}

	for _, tt := range tests {
		w, h := Dimensions(tt.ratio)
		assert.Equal(t, tt.width, w, "ratio %q", tt.ratio)
		assert.Equal(t, tt.height, h, "ratio %q", tt.ratio)
		assert.Zero(t, w%32)
		assert.Zero(t, h%32)
	}
}

func TestSupportedRatio(t *testing.T) {
	assert.True(t, SupportedRatio("1:1"))
	assert.True(t, SupportedRatio("4:5"))
	assert.False(t, SupportedRatio("21:9"))
	assert.False(t, SupportedRatio(""))
}

func newPollingServer(t *testing.T, result resultResponse) (*httptest.Server, *generateRequest) {
	t.Helper()
	var submitted generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/flux-dev":
			require.Equal(t, "test-key", r.Header.Get("X-Key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
			json.NewEncoder(w).Encode(generateResponse{Id: "task-1"})
		case "/v1/get_result":
			require.Equal(t, "task-1", r.URL.Query().Get("id"))
			json.NewEncoder(w).Encode(result)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &submitted
}

func TestGenerateImageReturnsSampleURL(t *testing.T) {
	srv, submitted := newPollingServer(t, resultResponse{
		Status: "Ready",
		Result: &struct {
			Sample string `json:"sample"`
		}{Sample: "https://cdn.example.com/result.png"},
	})

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	url, err := client.GenerateImage(context.Background(), "a red fox", "16:9")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/result.png", url)

	assert.Equal(t, "a red fox", submitted.Prompt)
	assert.Equal(t, 1408, submitted.Width)
	assert.Equal(t, 800, submitted.Height)
	assert.Equal(t, "png", submitted.OutputFormat)
}

func TestGenerateImageModerated(t *testing.T) {
	srv, _ := newPollingServer(t, resultResponse{Status: "Request Moderated"})

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	_, err := client.GenerateImage(context.Background(), "something", "1:1")
	assert.True(t, errors.Is(err, ErrModerated))
}

func TestGenerateImageTaskError(t *testing.T) {
	srv, _ := newPollingServer(t, resultResponse{Status: "Error", Error: "gpu on fire"})

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	_, err := client.GenerateImage(context.Background(), "something", "1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpu on fire")
}

func TestGenerateImageSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid key"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("bad-key")
	client.BaseURL = srv.URL

	_, err := client.GenerateImage(context.Background(), "something", "1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
