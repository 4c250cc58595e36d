/*
Package pipeline orchestrates a sending run: resolve campaigns, acquire the
auth session, load templates, and dispatch.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wmontagu/email-sender/internal/auth"
	"github.com/wmontagu/email-sender/internal/config"
	"github.com/wmontagu/email-sender/internal/dispatch"
	"github.com/wmontagu/email-sender/internal/mailer"
	"github.com/wmontagu/email-sender/internal/tmpl"
)

// DefaultSendLog is used when neither the config file nor a flag names one
const DefaultSendLog = "email_log.txt"

// Options contains options for a sending run
type Options struct {
	ConfigFile      string
	CampaignName    string
	From            string
	TemplatesDir    string
	CredentialsFile string
	TokenFile       string
	SendLog         string
	NoSendLog       bool
	DryRun          bool
}

// Pipeline runs one sending pass over the configured campaigns
type Pipeline struct {
	config    *config.Config
	options   Options
	store     *tmpl.Store
	startTime time.Time
}

// New loads and validates configuration and prepares a run
func New(ctx context.Context, opts Options) (*Pipeline, error) {
	cfgPath := opts.ConfigFile
	if cfgPath == "" {
		cfgPath = config.FindFile()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override file settings
	if err := cfg.Merge(&config.Config{
		Sender:       opts.From,
		TemplatesDir: opts.TemplatesDir,
		SendLog:      opts.SendLog,
	}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Sender == "" {
		return nil, fmt.Errorf("sender address is required (set --from or sender in the campaign file)")
	}
	if _, err := mail.ParseAddress(cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", cfg.Sender, err)
	}

	return &Pipeline{
		config:    cfg,
		options:   opts,
		store:     tmpl.NewStore(cfg.TemplatesDir),
		startTime: time.Now(),
	}, nil
}

// Run executes the sending pass. Per-recipient failures are reported, not
// returned: the error is non-nil only for fatal conditions (unknown
// campaign, auth failure, missing template in single-campaign mode).
func (p *Pipeline) Run(ctx context.Context) error {
	campaigns, err := p.config.Campaigns.Resolve(p.options.CampaignName)
	if err != nil {
		return err
	}

	sender, err := p.newSender(ctx)
	if err != nil {
		return err
	}

	var sendLog *dispatch.SendLog
	if !p.options.NoSendLog {
		path := p.config.SendLog
		if path == "" {
			path = DefaultSendLog
		}
		sendLog = dispatch.NewSendLog(path)
	}

	d := dispatch.New(sender, p.config.Sender, sendLog)

	// A missing template is fatal when one campaign was requested; in
	// all-campaigns mode the campaign is skipped and the run continues.
	single := p.options.CampaignName != ""

	totalSent := 0
	totalRecipients := 0
	skipped := 0

	for _, c := range campaigns {
		template, err := p.store.Load(c.Template)
		if err != nil {
			if single {
				return err
			}
			log.Error("Skipping campaign", "campaign", c.Name, "error", err)
			skipped++
			continue
		}

		log.Info("Sending campaign", "campaign", c.Name, "recipients", len(c.Recipients))
		fmt.Printf("\n[%s]\n", c.Name)

		report := d.Run(ctx, c, template)
		fmt.Printf("  Sent %d/%d emails successfully\n", report.Succeeded(), len(report))

		totalSent += report.Succeeded()
		totalRecipients += len(report)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	fmt.Printf("Total: %d/%d emails sent across %d campaign(s)\n",
		totalSent, totalRecipients, len(campaigns)-skipped)

	log.Info("Run completed",
		"sent", totalSent,
		"recipients", totalRecipients,
		"skipped_campaigns", skipped,
		"duration", time.Since(p.startTime).Round(time.Millisecond))

	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return nil
}

// newSender builds the send capability: a dry-run stub, or a Gmail client
// over a session acquired once and reused for every send.
func (p *Pipeline) newSender(ctx context.Context) (mailer.Sender, error) {
	if p.options.DryRun {
		log.Info("Dry run: composing without sending")
		return mailer.DryRun{}, nil
	}

	session, err := auth.NewSession(ctx, auth.Options{
		CredentialsFile: p.options.CredentialsFile,
		TokenFile:       p.options.TokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	sender, err := mailer.NewGmail(ctx, session.TokenSource())
	if err != nil {
		return nil, err
	}
	return sender, nil
}
