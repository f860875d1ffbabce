// Package graphql provides the portal backend over the Hasura GraphQL API.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/store"
)

// adminSecretHeader authenticates service calls against Hasura.
const adminSecretHeader = "x-hasura-admin-secret"

// maxResponseSize caps the bytes read from a single GraphQL response.
const maxResponseSize = 4 << 20

// Transport errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected GraphQL status code")
	ErrInvalidResponse  = errors.New("invalid GraphQL response")
)

// constraintViolationCode is the Hasura error code for unique/foreign key violations.
const constraintViolationCode = "constraint-violation"

// Error is a GraphQL-level error returned in the "errors" array.
type Error struct {
	Code     string
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("graphql: %s", strings.Join(e.Messages, "; "))
}

// Unwrap maps Hasura error codes onto store errors.
func (e *Error) Unwrap() error {
	if e.Code == constraintViolationCode {
		return store.ErrConflict
	}
	return nil
}

// Client issues GraphQL operations against a single endpoint.
type Client struct {
	endpoint    string
	adminSecret string
	httpClient  *http.Client
	metrics     metrics.Recorder
}

// New creates a Client.
func New(endpoint, adminSecret string, timeout time.Duration, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Client{
		endpoint:    endpoint,
		adminSecret: adminSecret,
		httpClient:  &http.Client{Timeout: timeout},
		metrics:     recorder,
	}
}

type request struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Do executes operation and decodes its "data" object into out.
// out may be nil when the caller only needs the side effect.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	start := time.Now()
	err := c.do(ctx, operation, query, variables, out)
	c.metrics.ObserveBackendCall(operation, err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminSecret != "" {
		req.Header.Set(adminSecretHeader, c.adminSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if !gjson.ValidBytes(raw) {
		if resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}
		return ErrInvalidResponse
	}

	parsed := gjson.ParseBytes(raw)

	if errs := parsed.Get("errors"); errs.IsArray() && len(errs.Array()) > 0 {
		gqlErr := &Error{Code: errs.Get("0.extensions.code").String()}
		for _, msg := range errs.Get("#.message").Array() {
			gqlErr.Messages = append(gqlErr.Messages, msg.String())
		}
		return gqlErr
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	data := parsed.Get("data")
	if !data.IsObject() {
		return fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// Ping checks that the endpoint answers GraphQL requests.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, "Ping", pingQuery, nil, nil)
}
