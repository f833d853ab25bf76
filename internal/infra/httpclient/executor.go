package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ellytic/onboard/internal/domain"
)

// maxBody caps how much of a response is kept in memory.
const maxBody = 1 << 20

// ResponseData captures the response details and duration.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor sends JSON requests with a per-call timeout.
type Executor struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

type ExecutorOption func(*Executor)

// WithTimeout sets the default timeout applied to requests.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// WithHeader adds a header to every request.
func WithHeader(k, v string) ExecutorOption {
	return func(e *Executor) { e.headers[k] = v }
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:  New(cfg),
		timeout: cfg.Timeout,
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PostJSON marshals payload and posts it to url.
func (e *Executor) PostJSON(ctx context.Context, url string, payload any) (ResponseData, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ResponseData{}, &domain.OpError{Op: "httpclient.marshal", Kind: domain.KindInvalidInput, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ResponseData{}, &domain.OpError{Op: "httpclient.build", Kind: domain.KindInvalidConfig, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}

	return e.Do(ctx, req)
}

// Do executes the request and returns response data plus duration.
func (e *Executor) Do(ctx context.Context, req *http.Request) (ResponseData, error) {
	start := time.Now()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Do(req.WithContext(ctx))
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Duration: duration}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return ResponseData{Duration: duration}, err
	}

	return ResponseData{
		Status:    resp.StatusCode,
		Headers:   resp.Header.Clone(),
		BodyBytes: body,
		Duration:  duration,
	}, nil
}
