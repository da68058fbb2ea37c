package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	modelprofile "github.com/consultavoz/backend/internal/model/profile"
)

// ErrNotFound indicates the gateway knows no profile for the identifier.
var ErrNotFound = errors.New("profile not found")

// Fetcher loads the patient profile from the gateway at session boot.
type Fetcher struct {
	baseURL string
	http    *http.Client
}

// NewFetcher points at the gateway root, e.g. "http://localhost:3000".
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch returns the profile for the identifier. When the gateway yields
// several rows the first one wins and the rest are discarded.
func (f *Fetcher) Fetch(ctx context.Context, idGeneral string) (modelprofile.Profile, error) {
	if idGeneral == "" {
		return modelprofile.Profile{}, errors.New("idGeneral is required")
	}

	endpoint := fmt.Sprintf("%s/usuarios?idGeneral=%s", f.baseURL, url.QueryEscape(idGeneral))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return modelprofile.Profile{}, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return modelprofile.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return modelprofile.Profile{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return modelprofile.Profile{}, fmt.Errorf("fetch profile: gateway status %d", resp.StatusCode)
	}

	var rows []modelprofile.Profile
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return modelprofile.Profile{}, fmt.Errorf("decode profile rows: %w", err)
	}
	if len(rows) == 0 {
		return modelprofile.Profile{}, ErrNotFound
	}
	return rows[0], nil
}
