package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"github.com/promotora-credito/app-cadastro/internal/utils/httpclient"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const backendService = "backend"

// maxErrorBody bounds how much of an error body is read
const maxErrorBody = 64 << 10

// BackendClient talks to the lending REST backend on behalf of the caller.
// The caller's bearer token is forwarded unchanged on every request.
type BackendClient struct {
	baseURL string
	pool    *httpclient.HTTPClientPool
	retry   RetryConfig
	logger  *logging.SafeLogger
}

// NewBackendClient creates a backend client
func NewBackendClient(baseURL string, pool *httpclient.HTTPClientPool, logger *logging.SafeLogger) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		pool:    pool,
		retry:   DefaultRetryConfig(),
		logger:  logger,
	}
}

// WithRetry overrides the retry policy of reads
func (c *BackendClient) WithRetry(cfg RetryConfig) *BackendClient {
	c.retry = cfg
	return c
}

// do performs one request and decodes a JSON answer into out
func (c *BackendClient) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	ctx, span := utils.TraceExternalService(ctx, backendService, method+" "+path)
	defer span.End()
	start := time.Now()
	status := "error"
	defer func() {
		observability.ExternalCalls.WithLabelValues(backendService, method+" "+routeOf(path), status).Observe(time.Since(start).Seconds())
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.pool.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, attribute.String("http.method", method))
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()
	status = fmt.Sprintf("%d", resp.StatusCode)
	utils.AddSpanAttribute(span, "http.status_code", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Service: backendService, StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var backendErr models.BackendError
		if json.Unmarshal(raw, &backendErr) == nil {
			apiErr.Message = backendErr.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// get performs an idempotent read with retries
func (c *BackendClient) get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	return withRetry(ctx, c.retry, c.logger, "GET "+routeOf(path), func() error {
		return c.do(ctx, token, http.MethodGet, path, query, nil, out)
	})
}

// routeOf drops identifiers from a path so metric labels stay bounded
func routeOf(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 1 {
		return "/" + parts[0] + "/{id}"
	}
	return path
}

// CreateClient registers a new client. Never retried.
func (c *BackendClient) CreateClient(ctx context.Context, token string, payload models.FormState) (models.ClientRecord, error) {
	var record models.ClientRecord
	if err := c.do(ctx, token, http.MethodPost, "/clientes", nil, payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateClient replaces an existing client. Never retried.
func (c *BackendClient) UpdateClient(ctx context.Context, token, id string, payload models.FormState) (models.ClientRecord, error) {
	var record models.ClientRecord
	if err := c.do(ctx, token, http.MethodPut, "/clientes/"+url.PathEscape(id), nil, payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetClient fetches a client record for an edit flow
func (c *BackendClient) GetClient(ctx context.Context, token, id string) (models.ClientRecord, error) {
	var record models.ClientRecord
	if err := c.get(ctx, token, "/clientes/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListOptions fetches one cascading option list. The backend answers either
// a bare array or an object with a data array.
func (c *BackendClient) ListOptions(ctx context.Context, token, list, parentParam, parentValue string) ([]models.OptionItem, error) {
	query := url.Values{}
	if parentParam != "" {
		query.Set(parentParam, parentValue)
	}

	var raw json.RawMessage
	if err := c.get(ctx, token, "/"+list, query, &raw); err != nil {
		return nil, err
	}

	items := []models.OptionItem{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return items, nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", list, err)
		}
		return items, nil
	}

	var wrapped struct {
		Data []models.OptionItem `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", list, err)
	}
	if wrapped.Data != nil {
		items = wrapped.Data
	}
	return items, nil
}

// Simulate executes a loan simulation. Never retried.
func (c *BackendClient) Simulate(ctx context.Context, token string, req models.SimulationRequest) (*models.Simulation, error) {
	var sim models.Simulation
	if err := c.do(ctx, token, http.MethodPost, "/simulacoes", nil, req, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// CreateProposal turns a simulation into a proposal. Never retried.
func (c *BackendClient) CreateProposal(ctx context.Context, token string, req models.ProposalRequest) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := c.do(ctx, token, http.MethodPost, "/propostas", nil, req, &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// ErrorMessage returns the message a user should see for a failed call:
// the backend message when it sent one, else the transport error.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

func logBackendError(logger *logging.SafeLogger, operation string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		logger.Warn("backend rejected request",
			zap.String("operation", operation),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message))
		return
	}
	logger.Error("backend request failed", zap.String("operation", operation), zap.Error(err))
}
