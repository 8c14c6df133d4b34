package styles

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteResolver_Resolve(t *testing.T) {
	var capturedAuth, capturedPath, capturedContentType string
	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		capturedPath = r.URL.Path
		capturedContentType = r.Header.Get("Content-Type")
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"properties": {"color": "#123456"}}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "mytoken", nil)
	props, err := resolver.ResolveStyle(context.Background(), "signature blue")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"color": "#123456"}, props)
	assert.Equal(t, "Bearer mytoken", capturedAuth)
	assert.Equal(t, "/v1/resolve", capturedPath)
	assert.Equal(t, "application/json", capturedContentType)
	assert.JSONEq(t, `{"description": "signature blue"}`, string(capturedBody))
}

func TestRemoteResolver_NoTokenOmitsAuth(t *testing.T) {
	var capturedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"properties": {}}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	_, err := resolver.ResolveStyle(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, capturedAuth)
}

func TestRemoteResolver_FallbackOnServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "model unavailable"}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	props, err := resolver.ResolveStyle(context.Background(), "bold")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"font-weight": "700"}, props)
}

func TestRemoteResolver_FallbackOnConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	props, err := resolver.ResolveStyle(context.Background(), "center text")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text-align": "center"}, props)
}

func TestRemoteResolver_CachesByDescription(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"properties": {"color": "#000000"}}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	ctx := context.Background()

	_, err := resolver.ResolveStyle(ctx, "dark text")
	require.NoError(t, err)
	_, err = resolver.ResolveStyle(ctx, "dark text")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	_, err = resolver.ResolveStyle(ctx, "another one")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestRemoteResolver_ServiceError(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		responseBody string
		expectedMsg  string
	}{
		{
			name:         "json error body",
			statusCode:   403,
			responseBody: `{"message": "quota exceeded"}`,
			expectedMsg:  "quota exceeded",
		},
		{
			name:         "plain error body",
			statusCode:   500,
			responseBody: "boom",
			expectedMsg:  "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			resolver := NewRemoteResolver(server.URL, "", nil)
			_, err := resolver.resolve(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedMsg)
		})
	}
}

func TestRemoteResolver_ServiceErrorType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "slow down"}`))
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	_, err := resolver.resolve(context.Background(), "x")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
}

func TestRemoteResolver_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The canceled call fails over to the rule tables.
	props, err := resolver.ResolveStyle(ctx, "bold")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"font-weight": "700"}, props)
}

func TestRemoteResolver_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	assert.NoError(t, resolver.Ping(context.Background()))
}

func TestRemoteResolver_PingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resolver := NewRemoteResolver(server.URL, "", nil)
	err := resolver.Ping(context.Background())
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
}
