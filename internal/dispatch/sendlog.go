package dispatch

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wmontagu/email-sender/internal/mailer"
)

// SendLog appends a human-readable block for every delivered message, so
// the operator has a record of exactly what went out.
type SendLog struct {
	path string
}

// NewSendLog creates a send log writing to path
func NewSendLog(path string) *SendLog {
	return &SendLog{path: path}
}

// Record appends one entry for a delivered message
func (l *SendLog) Record(campaign string, env mailer.Envelope) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open send log: %w", err)
	}
	defer f.Close()

	sep := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintln(&b, sep)
	fmt.Fprintf(&b, "Timestamp: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Campaign: %s\n", campaign)
	fmt.Fprintf(&b, "To: %s\n", env.To)
	fmt.Fprintf(&b, "Subject: %s\n", env.Subject)
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	fmt.Fprintln(&b, env.Body)
	fmt.Fprintf(&b, "%s\n\n", sep)

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append to send log: %w", err)
	}
	return nil
}
