package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmontagu/email-sender/internal/config"
	"github.com/wmontagu/email-sender/internal/tmpl"
)

// writeRun lays out a campaign file and templates directory for a dry run
func writeRun(t *testing.T, campaigns string, templates map[string]string) Options {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "campaigns.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(campaigns), 0o644))

	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.Mkdir(tplDir, 0o755))
	for name, body := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(tplDir, name), []byte(body), 0o644))
	}

	return Options{
		ConfigFile:   cfgPath,
		From:         "me@example.com",
		TemplatesDir: tplDir,
		DryRun:       true,
		NoSendLog:    true,
	}
}

const twoCampaigns = `
first:
  subject: "One"
  template: one.txt
  recipients:
    - email: a@example.com
      fill_items: ["Alice"]
second:
  subject: "Two"
  template: two.txt
  recipients:
    - email: b@example.com
`

func TestRun_DryRunAllCampaigns(t *testing.T) {
	opts := writeRun(t, twoCampaigns, map[string]string{
		"one.txt": "Hi {}",
		"two.txt": "static",
	})

	p, err := New(context.Background(), opts)
	require.NoError(t, err)

	assert.NoError(t, p.Run(context.Background()))
}

func TestRun_UnknownCampaignIsFatal(t *testing.T) {
	opts := writeRun(t, twoCampaigns, map[string]string{
		"one.txt": "Hi {}",
		"two.txt": "static",
	})
	opts.CampaignName = "missing"

	p, err := New(context.Background(), opts)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Run(context.Background()), config.ErrCampaignNotFound)
}

func TestRun_MissingTemplateFatalForNamedCampaign(t *testing.T) {
	opts := writeRun(t, twoCampaigns, map[string]string{
		"one.txt": "Hi {}",
		// two.txt deliberately absent
	})
	opts.CampaignName = "second"

	p, err := New(context.Background(), opts)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Run(context.Background()), tmpl.ErrTemplateNotFound)
}

func TestRun_MissingTemplateSkipsCampaignInAllMode(t *testing.T) {
	opts := writeRun(t, twoCampaigns, map[string]string{
		"one.txt": "Hi {}",
		// two.txt deliberately absent
	})

	p, err := New(context.Background(), opts)
	require.NoError(t, err)

	// The run still completes
	assert.NoError(t, p.Run(context.Background()))
}

func TestNew_ConfigErrors(t *testing.T) {
	t.Run("Missing Config File", func(t *testing.T) {
		_, err := New(context.Background(), Options{
			ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
			From:       "me@example.com",
		})
		assert.ErrorContains(t, err, "failed to load config")
	})

	t.Run("Invalid Campaign Shape", func(t *testing.T) {
		opts := writeRun(t, "bad:\n  template: t.txt\n  recipients: []\n", nil)
		_, err := New(context.Background(), opts)
		assert.ErrorContains(t, err, "subject is required")
	})

	t.Run("Sender Required", func(t *testing.T) {
		opts := writeRun(t, twoCampaigns, nil)
		opts.From = ""
		_, err := New(context.Background(), opts)
		assert.ErrorContains(t, err, "sender address is required")
	})

	t.Run("Sender Must Parse", func(t *testing.T) {
		opts := writeRun(t, twoCampaigns, nil)
		opts.From = "not an address"
		_, err := New(context.Background(), opts)
		assert.ErrorContains(t, err, "invalid sender address")
	})
}

func TestRun_SendLogWritten(t *testing.T) {
	opts := writeRun(t, `
logged:
  subject: "S"
  template: t.txt
  recipients:
    - email: a@example.com
      title: "Capt. Haddock"
`, map[string]string{"t.txt": "body"})

	logPath := filepath.Join(t.TempDir(), "email_log.txt")
	opts.NoSendLog = false
	opts.SendLog = logPath

	p, err := New(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background()))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dear Capt. Haddock,\n\nbody")
}
