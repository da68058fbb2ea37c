package realtime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultRealtimeURL is the provider's websocket realtime endpoint.
const DefaultRealtimeURL = "wss://api.openai.com/v1/realtime"

// WebSocketTransport dials the provider's realtime endpoint directly over a
// websocket. This is the native wire for a headless client; browser-fronted
// deployments use PeerTransport instead.
type WebSocketTransport struct {
	BaseURL string
	Model   string

	HandshakeTimeout time.Duration
}

// NewWebSocketTransport builds a transport for the given model against the
// default provider endpoint.
func NewWebSocketTransport(model string) *WebSocketTransport {
	return &WebSocketTransport{
		BaseURL:          DefaultRealtimeURL,
		Model:            model,
		HandshakeTimeout: 30 * time.Second,
	}
}

// Dial opens the event channel with the ephemeral secret as bearer.
func (t *WebSocketTransport) Dial(ctx context.Context, secret string) (Channel, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: t.HandshakeTimeout}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+secret)
	header.Set("OpenAI-Beta", "realtime=v1")

	endpoint := fmt.Sprintf("%s?model=%s", t.BaseURL, url.QueryEscape(t.Model))
	conn, _, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return newWSChannel(conn), nil
}

type wsChannel struct {
	conn *websocket.Conn
	recv chan []byte

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newWSChannel(conn *websocket.Conn) *wsChannel {
	ch := &wsChannel{conn: conn, recv: make(chan []byte, 16)}
	go ch.readLoop()
	return ch
}

// readLoop delivers inbound messages in arrival order and closes recv when
// the connection terminates.
func (c *wsChannel) readLoop() {
	defer close(c.recv)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.recv <- data
	}
}

func (c *wsChannel) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsChannel) Receive() <-chan []byte { return c.recv }

func (c *wsChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}
