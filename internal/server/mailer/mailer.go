// Package mailer delivers outbound notifications. The auth flow only sends
// one kind of message (password-reset instructions), so the contract is a
// single Send call; delivery failures are reported to the caller, which owns
// the compensating action.
package mailer

import "context"

// Message is a single outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender dispatches a message to its recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
