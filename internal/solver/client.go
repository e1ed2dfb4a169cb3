package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/pkg/config"
)

// Error is a transport-level failure talking to the solver. StatusCode is 0
// when the request never reached the solver; Payload carries whatever body
// the solver returned with a non-2xx status.
type Error struct {
	StatusCode int
	Payload    map[string]any
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		if msg, ok := e.Payload["error"].(string); ok && msg != "" {
			return fmt.Sprintf("solver returned %d: %s", e.StatusCode, msg)
		}
		return fmt.Sprintf("solver returned %d", e.StatusCode)
	}
	return fmt.Sprintf("solver unreachable: %v", e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Client talks to the external timetable solver over HTTP. One Solve call is
// one user-initiated generation; the client itself imposes no concurrency
// limits.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a solver client from config.
func NewClient(cfg config.SolverConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Solve posts the compiled constraint request and returns the ranked
// solution set. An empty solution list is a valid response, not an error.
func (c *Client) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal solve request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rutacritica/run", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build solve request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var solveResp dto.SolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&solveResp); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode solve response: %w", err)}
	}

	c.logger.Debug("solver responded",
		zap.Int("documentos_leidos", solveResp.DocumentosLeidos),
		zap.Int("soluciones", len(solveResp.Soluciones)),
	)

	return &solveResp, nil
}

// Datafiles lists the curriculum workbooks the solver knows about.
func (c *Client) Datafiles(ctx context.Context) (*dto.DatafilesResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/datafiles", nil)
	if err != nil {
		return nil, fmt.Errorf("build datafiles request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var files dto.DatafilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode datafiles response: %w", err)}
	}
	return &files, nil
}

// statusError drains a non-2xx response into a transport error. A body that
// fails to parse as JSON is not itself an error; the payload is just absent.
func (c *Client) statusError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var payload map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}

	return &Error{StatusCode: resp.StatusCode, Payload: payload}
}
