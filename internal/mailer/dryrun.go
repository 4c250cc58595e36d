package mailer

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DryRun composes messages without dispatching them, fabricating a message
// ID per send so the rest of the run behaves normally.
type DryRun struct{}

// Send logs the envelope and returns a fabricated message ID
func (DryRun) Send(_ context.Context, env Envelope) (string, error) {
	log.Debug("Dry run, not dispatching", "to", env.To, "subject", env.Subject, "bytes", len(env.Body))
	return "dry-run-" + uuid.NewString(), nil
}
