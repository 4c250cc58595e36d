package mailer

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Gmail sends messages through the Gmail API on behalf of the
// authenticated user.
type Gmail struct {
	svc *gmail.Service
}

// NewGmail builds a Gmail sender from an authenticated token source
func NewGmail(ctx context.Context, ts oauth2.TokenSource) (*Gmail, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	return &Gmail{svc: svc}, nil
}

// Send dispatches one message and returns the Gmail message ID
func (g *Gmail) Send(ctx context.Context, env Envelope) (string, error) {
	msg := &gmail.Message{Raw: encodeRaw(env)}

	res, err := g.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send failed: %w", err)
	}

	return res.Id, nil
}
