package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultNegotiationURL is the provider endpoint answering SDP offers.
const DefaultNegotiationURL = "https://api.openai.com/v1/realtime"

// PeerSession abstracts the peer media connection: local audio capture, the
// offer/answer descriptions and the data channel riding on it. Establishing
// one is where a media-permission denial surfaces.
type PeerSession interface {
	CreateOffer(ctx context.Context) (string, error)
	ApplyAnswer(answer string) error
	DataChannel() Channel
	Close() error
}

// Negotiator performs the provider's offer/answer exchange: the local
// description goes up as application/sdp with model and voice as query
// parameters, the remote description comes back in the response body.
type Negotiator struct {
	BaseURL string
	Model   string
	Voice   string

	HTTP *http.Client
}

// NewNegotiator builds a negotiator against the default provider endpoint.
func NewNegotiator(model, voice string) *Negotiator {
	return &Negotiator{
		BaseURL: DefaultNegotiationURL,
		Model:   model,
		Voice:   voice,
		HTTP:    http.DefaultClient,
	}
}

// Exchange posts the offer and returns the provider's answer description.
func (n *Negotiator) Exchange(ctx context.Context, secret, offer string) (string, error) {
	q := url.Values{}
	q.Set("model", n.Model)
	q.Set("voice", n.Voice)
	endpoint := n.BaseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(offer))
	if err != nil {
		return "", fmt.Errorf("build negotiation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+secret)
	req.Header.Set("Content-Type", "application/sdp")

	resp, err := n.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("negotiation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read negotiation answer: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("negotiation rejected: status %d: %s", resp.StatusCode, body)
	}
	return string(body), nil
}

// PeerTransport establishes the session over a peer media connection: create
// the local session (audio capture), exchange descriptions through the
// negotiator, then hand out the data channel. Closing the channel tears down
// the whole peer session, releasing the media resources.
type PeerTransport struct {
	NewSession func(ctx context.Context) (PeerSession, error)
	Negotiator *Negotiator
}

func (t *PeerTransport) Dial(ctx context.Context, secret string) (Channel, error) {
	sess, err := t.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("open media session: %w", err)
	}

	offer, err := sess.CreateOffer(ctx)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("create offer: %w", err)
	}

	answer, err := t.Negotiator.Exchange(ctx, secret, offer)
	if err != nil {
		sess.Close()
		return nil, err
	}

	if err := sess.ApplyAnswer(answer); err != nil {
		sess.Close()
		return nil, fmt.Errorf("apply answer: %w", err)
	}

	return &peerChannel{Channel: sess.DataChannel(), sess: sess}, nil
}

// peerChannel couples the data channel's lifetime to the media session's.
type peerChannel struct {
	Channel
	sess PeerSession
}

func (c *peerChannel) Close() error {
	err := c.Channel.Close()
	if serr := c.sess.Close(); err == nil {
		err = serr
	}
	return err
}
