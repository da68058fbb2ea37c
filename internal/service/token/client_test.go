package token

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMintRelaysProviderBody(t *testing.T) {
	providerBody := `{"id":"sess_1","client_secret":{"value":"ek_test"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["model"] != "gpt-4o-realtime-preview-2024-12-17" || req["voice"] != "verse" {
			t.Fatalf("unexpected mint payload: %v", req)
		}
		io.WriteString(w, providerBody)
	}))
	defer srv.Close()

	c := NewClient("sk-test", "gpt-4o-realtime-preview-2024-12-17", "verse", srv.URL)
	raw, err := c.Mint(context.Background())
	if err != nil {
		t.Fatalf("Mint err: %v", err)
	}
	if string(raw) != providerBody {
		t.Fatalf("provider body altered: %s", raw)
	}

	secret, err := ParseClientSecret(raw)
	if err != nil {
		t.Fatalf("ParseClientSecret err: %v", err)
	}
	if secret != "ek_test" {
		t.Fatalf("unexpected secret %q", secret)
	}
}

func TestMintProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("sk-test", "model", "verse", srv.URL)
	if _, err := c.Mint(context.Background()); err == nil {
		t.Fatal("expected error on provider failure")
	}
}

func TestParseClientSecretMissing(t *testing.T) {
	if _, err := ParseClientSecret(json.RawMessage(`{"id":"sess_1"}`)); err == nil {
		t.Fatal("expected error for missing client_secret")
	}
}
