package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/consultavoz/backend/internal/model/event"
	modelprofile "github.com/consultavoz/backend/internal/model/profile"
	"github.com/consultavoz/backend/internal/realtime"
	"github.com/consultavoz/backend/internal/service/consult"
	"github.com/consultavoz/backend/internal/service/panel"
	profilesvc "github.com/consultavoz/backend/internal/service/profile"
	"github.com/consultavoz/backend/internal/service/token"
)

// defaultIDGeneral is a development placeholder used when no patient
// identifier is supplied.
const defaultIDGeneral = "0231ad34-769d-4c0c-a19b-efb2e64e8bd6"

func main() {
	gatewayURL := flag.String("gateway", "http://localhost:3000", "gateway base URL")
	idGeneral := flag.String("id", "", "patient idGeneral (falls back to IDGENERAL, then a development placeholder)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	id := strings.TrimSpace(*idGeneral)
	if id == "" {
		id = strings.TrimSpace(os.Getenv("IDGENERAL"))
	}
	if id == "" {
		id = defaultIDGeneral
		log.Printf("[console] no idGeneral given, using development placeholder %s", id)
	}

	gateway := strings.TrimRight(*gatewayURL, "/")

	prof := fetchProfile(ctx, gateway, id)

	model := os.Getenv("OPENAI_REALTIME_MODEL")
	if model == "" {
		model = "gpt-4o-realtime-preview-2024-12-17"
	}

	eventLog := realtime.NewEventLog()
	manager := realtime.NewManager(credentialSource(gateway), realtime.NewWebSocketTransport(model), eventLog)

	watcher := consult.NewWatcher(manager, func(s consult.Summary) {
		log.Printf("[console] consulta registrada: paciente=%q sintomas=%q urgencia=%q",
			s.PatientName, s.Symptoms, s.Urgency)
	})
	eventLog.Observe(watcher.HandleEvent)

	eventLog.Observe(func(env event.Envelope) {
		direction := "<-"
		if env.Outbound {
			direction = "->"
		}
		log.Printf("[console] %s %s", direction, env.Type)
	})

	panels := panel.NewController(manager, prof)

	if err := manager.Start(ctx); err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	log.Println("[console] session active")

	if err := panels.Select(panel.PanelMedicalConsultation); err != nil {
		log.Printf("[console] greeting failed: %v", err)
	}

	select {
	case <-ctx.Done():
		log.Println("[console] interrupt received, stopping session")
		manager.Stop()
	case <-manager.Done():
	}
	log.Println("[console] session closed")
}

// fetchProfile loads the patient profile from the gateway. The session still
// boots without one; the controller then skips the greeting.
func fetchProfile(ctx context.Context, gateway, idGeneral string) *modelprofile.Profile {
	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	fetcher := profilesvc.NewFetcher(gateway)
	prof, err := fetcher.Fetch(fetchCtx, idGeneral)
	if err != nil {
		if errors.Is(err, profilesvc.ErrNotFound) {
			log.Printf("[console] no profile for idGeneral %s, continuing without context", idGeneral)
		} else {
			log.Printf("[console] profile lookup failed, continuing without context: %v", err)
		}
		return nil
	}
	return &prof
}

// credentialSource mints an ephemeral secret through the gateway's /token
// endpoint on every session start.
func credentialSource(gateway string) realtime.CredentialSource {
	client := &http.Client{Timeout: 30 * time.Second}
	return func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, gateway+"/token", nil)
		if err != nil {
			return "", fmt.Errorf("build token request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("fetch token: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read token response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetch token: gateway status %d", resp.StatusCode)
		}
		return token.ParseClientSecret(body)
	}
}
