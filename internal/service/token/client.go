package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the realtime session endpoint root at the provider.
const DefaultBaseURL = "https://api.openai.com/v1/realtime/sessions"

// Client mints short-lived realtime session credentials. The provider
// response is relayed verbatim so the browser/console client sees exactly
// what the provider returned.
type Client struct {
	apiKey  string
	model   string
	voice   string
	baseURL string
	http    *http.Client
}

// NewClient builds a credential client. baseURL may be empty to use the
// provider default.
func NewClient(apiKey, model, voice, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		voice:   voice,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Mint requests one session credential. On provider failure the status and
// message are propagated; there is no retry.
func (c *Client) Mint(ctx context.Context) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{
		"model": c.model,
		"voice": c.voice,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("credential issuance failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read credential response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("credential issuance failed: provider status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

// ParseClientSecret extracts the ephemeral key from a minted credential.
func ParseClientSecret(raw json.RawMessage) (string, error) {
	var payload struct {
		ClientSecret struct {
			Value string `json:"value"`
		} `json:"client_secret"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode credential: %w", err)
	}
	if payload.ClientSecret.Value == "" {
		return "", fmt.Errorf("credential is missing client_secret.value")
	}
	return payload.ClientSecret.Value, nil
}
