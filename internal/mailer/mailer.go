/*
Package mailer provides the message send boundary.

A Sender takes a fully composed envelope and returns the provider's message
ID. The production implementation talks to the Gmail API; the dry-run
implementation fabricates IDs without dispatching anything.
*/
package mailer

import "context"

// Envelope is one fully composed outgoing message
type Envelope struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender dispatches a single message and returns the provider message ID
type Sender interface {
	Send(ctx context.Context, env Envelope) (string, error)
}
