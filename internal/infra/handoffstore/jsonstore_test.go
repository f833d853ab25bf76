package handoffstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ellytic/onboard/internal/domain"
)

func sampleHandoff() domain.Handoff {
	return domain.Handoff{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		SessionID: "sess-1",
		Kind:      domain.DecisionContactSales,
		URL:       "/contact-sales?audience=professionals&interests=api",
		Context:   map[string]string{"audience": "professionals", "interests": "api", "contact_name": "Eleni"},
		Audience:  domain.AudienceProfessionals,
		Contact:   domain.Contact{Name: "Eleni P.", Email: "eleni@example.gr", Country: "GR"},
		CreatedAt: time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC),
	}
}

func TestSaveHandoff_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.HandoffsConfig{Dir: "handoffs"})

	id, err := store.SaveHandoff(sampleHandoff())
	if err != nil {
		t.Fatalf("SaveHandoff error: %v", err)
	}
	if id != sampleHandoff().ID {
		t.Fatalf("expected id to be kept, got %s", id)
	}

	wantFile := filepath.Join(tmp, "handoffs", "20260203T101112Z_contact_sales_0f8fad5b.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.Handoff
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Contact.Email != "eleni@example.gr" {
		t.Fatalf("expected unmasked email, got %q", decoded.Contact.Email)
	}
	if decoded.Context["interests"] != "api" {
		t.Fatalf("expected context to round-trip, got %v", decoded.Context)
	}

	if _, err := os.Stat(wantFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone")
	}
}

func TestSaveHandoff_MasksPersonalData(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.HandoffsConfig{Masking: true})

	in := sampleHandoff()
	if _, err := store.SaveHandoff(in); err != nil {
		t.Fatalf("SaveHandoff error: %v", err)
	}
	if in.Contact.Name != "Eleni P." || in.Context["contact_name"] != "Eleni" {
		t.Fatalf("input must not be mutated")
	}

	matches, _ := filepath.Glob(filepath.Join(tmp, "handoffs", "*.json"))
	if len(matches) != 1 {
		t.Fatalf("expected one file, got %v", matches)
	}
	b, _ := os.ReadFile(matches[0])
	s := string(b)

	if strings.Contains(s, "Eleni") {
		t.Fatalf("expected name to be masked:\n%s", s)
	}
	if !strings.Contains(s, "********@example.gr") {
		t.Fatalf("expected masked email with domain:\n%s", s)
	}
	if !strings.Contains(s, `"country": "GR"`) {
		t.Fatalf("expected country to be kept:\n%s", s)
	}
}

func TestSaveHandoff_FillsIDAndTime(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewJSONStore(tmp, domain.HandoffsConfig{}, WithNow(func() time.Time { return now }))

	h := sampleHandoff()
	h.ID = ""
	h.CreatedAt = time.Time{}

	id, err := store.SaveHandoff(h)
	if err != nil {
		t.Fatalf("SaveHandoff error: %v", err)
	}
	if len(id) != 36 {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	matches, _ := filepath.Glob(filepath.Join(tmp, "handoffs", "20260101T000000Z_contact_sales_*.json"))
	if len(matches) != 1 {
		t.Fatalf("expected file stamped with injected clock, got %v", matches)
	}
}

func TestSaveHandoff_AppendsIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.HandoffsConfig{Dir: "out", Index: true})

	first := sampleHandoff()
	second := sampleHandoff()
	second.ID = "11111111-2222-3333-4444-555555555555"
	second.Kind = domain.DecisionDirectCheckout

	for _, h := range []domain.Handoff{first, second} {
		if _, err := store.SaveHandoff(h); err != nil {
			t.Fatalf("SaveHandoff: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "out", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("index line: %v", err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 index lines, got %d", len(lines))
	}
	if lines[1]["kind"] != "direct_checkout" || lines[1]["session_id"] != "sess-1" {
		t.Fatalf("unexpected index entry %v", lines[1])
	}
}
