package profile

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchPicksFirstRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("idGeneral"); got != "abc-123" {
			t.Fatalf("unexpected idGeneral %q", got)
		}
		io.WriteString(w, `[
			{"idgeneral":"abc-123","primernombre":"Ana","encuestasalud":"[\"tos\"]"},
			{"idgeneral":"abc-123","primernombre":"Duplicada"}
		]`)
	}))
	defer srv.Close()

	p, err := NewFetcher(srv.URL).Fetch(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("Fetch err: %v", err)
	}
	if p.PrimerNombre != "Ana" {
		t.Fatalf("expected first row, got %+v", p)
	}
	if len(p.EncuestaSalud) != 1 || p.EncuestaSalud[0] != "tos" {
		t.Fatalf("survey field not normalized: %+v", p.EncuestaSalud)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no rows"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL).Fetch(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchRequiresIdentifier(t *testing.T) {
	if _, err := NewFetcher("http://localhost").Fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}
