package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiService_GenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"1. Mouse "},{"text":"en riesgo"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("clave", "").WithBaseURL(srv.URL)
	text, err := svc.GenerateText(context.Background(), "", "hola")

	require.NoError(t, err)
	assert.Equal(t, "1. Mouse en riesgo", text)
	assert.Equal(t, "/models/"+DefaultGeminiModel+":generateContent", gotPath)
	assert.Equal(t, "clave", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hola", gotBody.Contents[0].Parts[0].Text)
}

func TestGeminiService_ErrorDelProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("", "m").WithBaseURL(srv.URL).GenerateText(context.Background(), "", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiService_SinCandidatosDevuelveVacio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	text, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).GenerateText(context.Background(), "", "x")

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestAnthropicService_GenerateText(t *testing.T) {
	var gotBody anthropicRequest
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Recomendación: reponer."}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("sk-test", "").WithBaseURL(srv.URL + "/")
	text, err := svc.GenerateText(context.Background(), "claude-x", "prompt")

	require.NoError(t, err)
	assert.Equal(t, "Recomendación: reponer.", text)
	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "claude-x", gotBody.Model)
	assert.Equal(t, "prompt", gotBody.Messages[0].Content)
}

func TestAnthropicService_ErrorDelProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("", "").WithBaseURL(srv.URL).GenerateText(context.Background(), "", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestNewProvider(t *testing.T) {
	svc, model, err := NewProvider("", "k", "")
	require.NoError(t, err)
	assert.IsType(t, &GeminiService{}, svc)
	assert.Equal(t, DefaultGeminiModel, model)

	svc, model, err = NewProvider("Anthropic", "k", "claude-y")
	require.NoError(t, err)
	assert.IsType(t, &AnthropicService{}, svc)
	assert.Equal(t, "claude-y", model)

	_, _, err = NewProvider("openai", "k", "")
	assert.Error(t, err)
}
