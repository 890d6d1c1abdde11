package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/portable/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("TSK_WEB_BOOKMARK")
	b := domain.NewInternedString("TSK_WEB_BOOKMARK")

	if a != b {
		t.Errorf("expected identical strings to intern to the same value")
	}
	if a.String() != "TSK_WEB_BOOKMARK" {
		t.Errorf("unexpected String(): %q", a.String())
	}

	var zero domain.InternedString
	if !zero.IsZero() || zero.String() != "" {
		t.Errorf("expected zero value to be empty, got %q", zero.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	type attr struct {
		Type domain.InternedString `json:"type"`
	}

	data, err := json.Marshal(attr{Type: domain.NewInternedString("TSK_URL")})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"type":"TSK_URL"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var got attr
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got.Type.String() != "TSK_URL" {
		t.Errorf("unexpected round trip value %q", got.Type.String())
	}

	if data, err := json.Marshal(attr{}); err != nil || string(data) != `{"type":""}` {
		t.Errorf("zero value marshal: %s, %v", data, err)
	}
}
