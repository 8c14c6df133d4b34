package styles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// ServiceError is a non-2xx reply from the style service.
type ServiceError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("style service returned status %d", e.StatusCode)
}

// RemoteResolver resolves descriptions through an HTTP style service and
// falls back to the rule tables when the service fails, so a dead service
// degrades output quality but never blocks processing. Successful lookups
// are cached by description for the resolver's lifetime; the cache is safe
// for concurrent use.
type RemoteResolver struct {
	baseURL    string
	token      string
	httpClient *http.Client
	fallback   *Resolver
	log        *zap.Logger

	mu    sync.Mutex
	cache map[string]map[string]string
}

// NewRemoteResolver creates a resolver against the service at baseURL.
// token may be empty for unauthenticated services; logger may be nil.
func NewRemoteResolver(baseURL, token string, logger *zap.Logger) *RemoteResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		fallback: NewResolver(),
		log:      logger.Named("styles"),
		cache:    make(map[string]map[string]string),
	}
}

type resolveRequest struct {
	Description string `json:"description"`
}

type resolveResponse struct {
	Properties map[string]string `json:"properties"`
}

// ResolveStyle implements the style resolution contract used by pkg/rewrite.
func (r *RemoteResolver) ResolveStyle(ctx context.Context, description string) (map[string]string, error) {
	r.mu.Lock()
	if props, ok := r.cache[description]; ok {
		r.mu.Unlock()
		return props, nil
	}
	r.mu.Unlock()

	props, err := r.resolve(ctx, description)
	if err != nil {
		r.log.Warn("style service failed, using rule tables",
			zap.String("description", description),
			zap.Error(err))
		return r.fallback.ResolveStyle(ctx, description)
	}

	r.mu.Lock()
	r.cache[description] = props
	r.mu.Unlock()
	return props, nil
}

// resolve executes one service call and returns the property map.
func (r *RemoteResolver) resolve(ctx context.Context, description string) (map[string]string, error) {
	jsonBody, err := json.Marshal(resolveRequest{Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/resolve", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var svcErr ServiceError
		if err := json.Unmarshal(respBody, &svcErr); err != nil {
			return nil, fmt.Errorf("service error (status %d): %s", resp.StatusCode, string(respBody))
		}
		svcErr.StatusCode = resp.StatusCode
		return nil, &svcErr
	}

	var out resolveResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Properties, nil
}

// Ping checks service reachability, for connectivity tests at setup time.
func (r *RemoteResolver) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &ServiceError{StatusCode: resp.StatusCode}
	}
	return nil
}
