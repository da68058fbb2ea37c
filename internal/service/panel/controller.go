package panel

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/consultavoz/backend/internal/model/event"
	"github.com/consultavoz/backend/internal/model/profile"
)

// Panel identifies the visible side panel.
type Panel int

const (
	PanelToolLog Panel = iota
	PanelMedicalConsultation
)

func (p Panel) String() string {
	switch p {
	case PanelToolLog:
		return "tool-log"
	case PanelMedicalConsultation:
		return "medical-consultation"
	default:
		return fmt.Sprintf("panel(%d)", int(p))
	}
}

// Sender transmits client events; in practice the realtime manager.
type Sender interface {
	Send(event.Client) error
}

// Controller holds the selected panel and primes the conversation with the
// patient context when the consultation panel comes up.
type Controller struct {
	sender  Sender
	profile *profile.Profile

	mu     sync.Mutex
	active Panel
}

// NewController starts on the tool log panel. The profile may be nil when
// the boot-time lookup failed; the controller then switches panels without
// greeting.
func NewController(sender Sender, p *profile.Profile) *Controller {
	return &Controller{sender: sender, profile: p, active: PanelToolLog}
}

// Active returns the selected panel.
func (c *Controller) Active() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Select switches panels. Entering the consultation panel sends one greeting
// addressed to the patient with the full context prefixed; re-selecting the
// already-active panel does nothing.
func (c *Controller) Select(p Panel) error {
	c.mu.Lock()
	if c.active == p {
		c.mu.Unlock()
		return nil
	}
	c.active = p
	c.mu.Unlock()

	if p != PanelMedicalConsultation {
		return nil
	}

	if c.profile == nil || strings.TrimSpace(c.profile.PrimerNombre) == "" {
		log.Printf("[panel] no profile name available, skipping greeting")
		return nil
	}

	greeting := fmt.Sprintf("Hola %s, ¿cómo puedo ayudarte hoy?", strings.TrimSpace(c.profile.PrimerNombre))
	return c.SendText(greeting, true)
}

// SendText transmits a user message, optionally prefixing the profile
// context block, then requests the agent's turn.
func (c *Controller) SendText(message string, includeContext bool) error {
	texts := []string{message}
	if includeContext && c.profile != nil {
		ctx, err := profile.BuildContext(*c.profile)
		if err != nil {
			return fmt.Errorf("build context: %w", err)
		}
		texts = []string{ctx, message}
	}

	if err := c.sender.Send(event.NewUserMessage(texts...)); err != nil {
		return err
	}
	return c.sender.Send(event.NewResponseCreate(""))
}
