package providers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotExtra string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotExtra = r.Header.Get("X-Request-Tag")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := &BaseProvider{
		Name:    Trebetta,
		BaseURL: server.URL,
		Client:  server.Client(),
		Token:   func() string { return "tok-123" },
	}

	resp, err := provider.MakeRequest(http.MethodPost, server.URL, map[string]string{"key": "value"}, map[string]string{"X-Request-Tag": "abc"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc", gotExtra)
	assert.Equal(t, map[string]string{"key": "value"}, gotBody)
}

func TestMakeRequestSkipsEmptyToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	provider := &BaseProvider{
		Name:    Trebetta,
		BaseURL: server.URL,
		Client:  server.Client(),
		Token:   func() string { return "" },
	}

	resp, err := provider.MakeRequest(http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestMakeRequestFiresUnauthorizedHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	fired := make(chan struct{}, 1)
	provider := &BaseProvider{
		Name:           Trebetta,
		BaseURL:        server.URL,
		Client:         server.Client(),
		OnUnauthorized: func() { fired <- struct{}{} },
	}

	resp, err := provider.MakeRequest(http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("unauthorized hook never fired")
	}
}

func TestProviderServiceRegistry(t *testing.T) {
	service := NewProviderService()

	provider := &BaseProvider{Name: Trebetta, BaseURL: "https://api.trebetta.com/api", Client: http.DefaultClient}
	service.AddProvider(provider)

	got, ok := service.GetProvider(Trebetta)
	require.True(t, ok)
	assert.Equal(t, Trebetta, got.GetName())
	assert.Equal(t, "https://api.trebetta.com/api", got.GetBaseURL())

	_, ok = service.GetProvider(Flutterwave)
	assert.False(t, ok)
}
