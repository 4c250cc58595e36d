/*
Package dispatch iterates a campaign's recipients and records per-recipient
send outcomes.

A failed send never aborts the batch: the dispatcher moves on to the next
recipient and the caller inspects the report to distinguish full success,
partial success, and total failure. Nothing is retried within a run.
*/
package dispatch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wmontagu/email-sender/internal/config"
	"github.com/wmontagu/email-sender/internal/mailer"
	"github.com/wmontagu/email-sender/internal/tmpl"
)

// Outcome is the per-recipient result of attempting delivery
type Outcome struct {
	Email     string
	MessageID string
	Err       error
}

// Sent reports whether the message was accepted by the provider
func (o Outcome) Sent() bool {
	return o.Err == nil
}

// Report collects outcomes for one campaign, in recipient order
type Report []Outcome

// Succeeded returns the number of accepted messages
func (r Report) Succeeded() int {
	n := 0
	for _, o := range r {
		if o.Sent() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed sends
func (r Report) Failed() int {
	return len(r) - r.Succeeded()
}

// Dispatcher sends a campaign's messages one recipient at a time
type Dispatcher struct {
	sender  mailer.Sender
	from    string
	sendLog *SendLog
}

// New creates a dispatcher. sendLog may be nil to disable the send log.
func New(sender mailer.Sender, from string, sendLog *SendLog) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		from:    from,
		sendLog: sendLog,
	}
}

// Run composes and sends one message per recipient, in list order. The
// returned report has exactly one outcome per recipient; an empty recipient
// list produces an empty report and no sends.
func (d *Dispatcher) Run(ctx context.Context, campaign *config.Campaign, template string) Report {
	markers := tmpl.MarkerCount(template)
	report := make(Report, 0, len(campaign.Recipients))

	for _, r := range campaign.Recipients {
		if len(r.FillItems) < markers {
			log.Warn("Fewer fill items than markers, leaving the rest literal",
				"campaign", campaign.Name, "to", r.Email,
				"markers", markers, "fill_items", len(r.FillItems))
		}

		env := mailer.Envelope{
			From:    d.from,
			To:      r.Email,
			Subject: campaign.Subject,
			Body:    tmpl.Greet(r.Title, tmpl.Fill(template, r.FillItems)),
		}

		id, err := d.sender.Send(ctx, env)
		if err != nil {
			fmt.Printf("✗ Failed to send to %s: %v\n", r.Email, err)
			report = append(report, Outcome{Email: r.Email, Err: err})
			continue
		}

		fmt.Printf("✓ Email sent to %s (message ID: %s)\n", r.Email, id)
		report = append(report, Outcome{Email: r.Email, MessageID: id})

		if d.sendLog != nil {
			if err := d.sendLog.Record(campaign.Name, env); err != nil {
				log.Warn("Failed to write send log", "error", err)
			}
		}
	}

	return report
}
