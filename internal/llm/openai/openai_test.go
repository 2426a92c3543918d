package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/llm"
)

func TestComplete_SendsSystemAndHistory(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ciao"}}]}`))
	}))
	defer srv.Close()

	p := New(srv.URL, "sk-test", "gpt-3.5-turbo", 5*time.Second)
	out, err := p.Complete(context.Background(), llm.Request{
		System:      "be kind",
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	require.NoError(t, err)
	assert.Equal(t, "ciao", out)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, llm.Message{Role: "system", Content: "be kind"}, got.Messages[0])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "hi"}, got.Messages[1])
}

func TestComplete_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`},
		{"bad json", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "", "m", time.Second).Complete(context.Background(), llm.Request{})
			assert.Error(t, err)
		})
	}
}

func TestHealthPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL, "k", "m", time.Second).HealthPing(context.Background()))
}
