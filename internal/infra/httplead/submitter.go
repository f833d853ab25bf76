// Package httplead posts contact-sales hand-offs to a sales-leads endpoint.
package httplead

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/httpclient"
	"github.com/ellytic/onboard/internal/ports"
)

// DefaultReferencePath locates the lead id in the endpoint's JSON response.
const DefaultReferencePath = "$.id"

type Submitter struct {
	url     string
	refPath string
	exec    *httpclient.Executor
}

type Option func(*Submitter)

// WithReferencePath changes the JSONPath used to read the lead reference.
func WithReferencePath(expr string) Option {
	return func(s *Submitter) { s.refPath = expr }
}

// WithExecutor replaces the HTTP executor.
func WithExecutor(e *httpclient.Executor) Option {
	return func(s *Submitter) { s.exec = e }
}

func New(cfg domain.LeadsConfig, opts ...Option) *Submitter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := httpclient.DefaultConfig()
	hc.Timeout = timeout

	s := &Submitter{
		url:     strings.TrimSpace(cfg.SubmitURL),
		refPath: DefaultReferencePath,
		exec: httpclient.NewExecutor(
			httpclient.WithClient(httpclient.New(hc)),
			httpclient.WithTimeout(timeout),
			httpclient.WithHeader("User-Agent", "onboard-wizard"),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.LeadSubmitter = (*Submitter)(nil)

type leadPayload struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Audience  string            `json:"audience,omitempty"`
	Interests []string          `json:"interests,omitempty"`
	Products  []string          `json:"products,omitempty"`
	Source    string            `json:"source,omitempty"`
	Message   string            `json:"message,omitempty"`
	Contact   domain.Contact    `json:"contact"`
	Context   map[string]string `json:"context"`
	CreatedAt time.Time         `json:"created_at"`
}

// SubmitLead posts the hand-off and returns the reference assigned by the
// endpoint, or "" when the response carries none.
func (s *Submitter) SubmitLead(ctx context.Context, h domain.Handoff) (string, error) {
	const op = "httplead.submit"

	if s.url == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("leads.submit_url is not set: %w", domain.ErrInvalidConfig)}
	}
	if h.Kind != domain.DecisionContactSales {
		return "", domain.InvalidInput(op, "only contact-sales hand-offs are leads, got %s", h.Kind)
	}

	payload := leadPayload{
		ID:        h.ID,
		SessionID: h.SessionID,
		Audience:  string(h.Audience),
		Interests: splitList(h.Context[domain.CtxInterests]),
		Products:  splitList(h.Context[domain.CtxProducts]),
		Source:    h.Context[domain.CtxSource],
		Message:   h.Message,
		Contact:   h.Contact,
		Context:   h.Context,
		CreatedAt: h.CreatedAt.UTC(),
	}

	resp, err := s.exec.PostJSON(ctx, s.url, payload)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.url, Err: err}
	}
	if resp.Status < 200 || resp.Status > 299 {
		return "", &domain.OpError{
			Op:   op,
			Kind: domain.KindExecution,
			Path: s.url,
			Err:  fmt.Errorf("unexpected status %d: %w", resp.Status, domain.ErrExecution),
		}
	}

	return s.reference(resp.BodyBytes), nil
}

func (s *Submitter) reference(body []byte) string {
	if len(body) == 0 || strings.TrimSpace(s.refPath) == "" {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	v, err := jsonpath.Get(s.refPath, doc)
	if err != nil || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
