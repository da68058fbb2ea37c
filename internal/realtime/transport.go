package realtime

import "context"

// Channel is the bidirectional event channel of one realtime session.
// Receive's channel closes when the transport terminates.
type Channel interface {
	Send(data []byte) error
	Receive() <-chan []byte
	Close() error
}

// Transport establishes the event channel using a short-lived credential.
type Transport interface {
	Dial(ctx context.Context, secret string) (Channel, error)
}

// CredentialSource obtains the ephemeral session secret, normally by asking
// the gateway's /token endpoint.
type CredentialSource func(ctx context.Context) (string, error)
