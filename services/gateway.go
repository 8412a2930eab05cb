package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"iris_registry/models"
	"iris_registry/types"
)

const addEmployeePath = "/api/addEmployee"

// GatewayError reports a failed submission. The draft stays intact so the
// user can retry.
type GatewayError struct {
	Status  int // zero for transport failures
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submission failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("submission failed: %s", e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway sends completed records to the registry server.
type Gateway struct {
	client   *http.Client
	endpoint string
	token    string
	timeout  time.Duration
}

func NewGateway(endpoint, token string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		client:   &http.Client{},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		timeout:  timeout,
	}
}

// Submit posts the record to the registry and waits for the acknowledgement.
func (g *Gateway) Submit(ctx context.Context, record models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+addEmployeePath, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &GatewayError{Message: "could not reach the registry server", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	return nil
}

func errorMessage(body io.Reader) string {
	var payload types.APIResponse
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&payload); err != nil || payload.Error == "" {
		return types.ErrAddEmployeeFail
	}
	return payload.Error
}
