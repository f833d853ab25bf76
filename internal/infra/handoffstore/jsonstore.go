package handoffstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
)

const defaultDir = "handoffs"
const maskValue = "********"

// JSONStore writes one JSON document per hand-off under <root>/<dir>.
type JSONStore struct {
	rootDir        string
	dirName        string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.HandoffsConfig, opts ...Option) *JSONStore {
	dir := cfg.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}

	s := &JSONStore{
		rootDir:        root,
		dirName:        dir,
		maskingEnabled: cfg.Masking,
		writeIndex:     cfg.Index,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.HandoffStore = (*JSONStore)(nil)

// SaveHandoff persists h and returns its id. A missing id or timestamp is filled in.
func (s *JSONStore) SaveHandoff(h domain.Handoff) (string, error) {
	dir := filepath.Join(s.rootDir, s.dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "handoffstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	toSave := h
	if toSave.ID == "" {
		toSave.ID = uuid.NewString()
	}
	if toSave.CreatedAt.IsZero() {
		toSave.CreatedAt = s.now()
	}
	toSave.CreatedAt = toSave.CreatedAt.UTC()

	short := toSave.ID
	if len(short) > 8 {
		short = short[:8]
	}
	filename := fmt.Sprintf("%s_%s_%s.json", toSave.CreatedAt.Format("20060102T150405Z"), toSave.Kind, short)
	path := filepath.Join(dir, filename)

	if s.maskingEnabled {
		toSave = maskHandoff(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "handoffstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "handoffstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "handoffstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = appendIndex(dir, filename, toSave)
	}

	return toSave.ID, nil
}

func appendIndex(dir, filename string, h domain.Handoff) error {
	type idx struct {
		ID        string              `json:"id"`
		File      string              `json:"file"`
		Session   string              `json:"session_id"`
		Kind      domain.DecisionKind `json:"kind"`
		Audience  domain.Audience     `json:"audience,omitempty"`
		CreatedAt time.Time           `json:"created_at"`
	}
	line, err := json.Marshal(idx{
		ID:        h.ID,
		File:      filename,
		Session:   h.SessionID,
		Kind:      h.Kind,
		Audience:  h.Audience,
		CreatedAt: h.CreatedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// maskHandoff returns a masked copy (does NOT mutate the input).
func maskHandoff(h domain.Handoff) domain.Handoff {
	out := h
	if out.Contact.Name != "" {
		out.Contact.Name = maskValue
	}
	if out.Contact.Email != "" {
		out.Contact.Email = maskEmail(out.Contact.Email)
	}

	out.Context = make(map[string]string, len(h.Context))
	for k, v := range h.Context {
		if isSensitiveKey(k) {
			v = maskValue
		}
		out.Context[k] = v
	}
	return out
}

// maskEmail keeps the domain so hand-offs can still be grouped by company.
func maskEmail(e string) string {
	at := strings.LastIndex(e, "@")
	if at <= 0 {
		return maskValue
	}
	return maskValue + e[at:]
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(k)
	return strings.Contains(kk, "email") ||
		strings.Contains(kk, "name") ||
		strings.Contains(kk, "phone") ||
		strings.Contains(kk, "token")
}
