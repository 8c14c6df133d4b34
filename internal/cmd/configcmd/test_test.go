package configcmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/aicss-cli/internal/config"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		ClassPrefix:  "ai-",
		StyleService: serverURL,
		ServiceToken: "test-token",
	}
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/health", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	err := runTest(true, nil, testConfig(server.URL))
	require.NoError(t, err)
}

func TestRunTest_NoService(t *testing.T) {
	// Without a style service, there is nothing to test
	err := runTest(true, nil, &config.Config{ClassPrefix: "ai-"})
	require.NoError(t, err)
}

func TestRunTest_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Unauthorized"}`))
	}))
	defer server.Close()

	err := runTest(true, nil, testConfig(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestRunTest_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	err := runTest(true, nil, testConfig(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestRunTest_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := runTest(true, nil, testConfig(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}
