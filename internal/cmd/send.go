package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmontagu/email-sender/internal/pipeline"
)

var (
	fromAddr    string
	dryRun      bool
	sendLogFile string
	noSendLog   bool
)

var sendCmd = &cobra.Command{
	Use:   "send [campaign]",
	Short: "Send one campaign, or all campaigns",
	Long: `Send personalized email for the named campaign, or for every
campaign in the campaign file when no name is given.

Recipients are processed strictly in list order, one send at a time. A
failed send is reported and the batch continues; the run exits zero as long
as it completes, even with per-recipient failures. Fatal errors (bad
config, unknown campaign, authentication failure) exit non-zero before any
further sends.

Every delivered message is appended to the send log (email_log.txt by
default) with its rendered body.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		opts := pipeline.Options{
			ConfigFile:      cfgFile,
			CampaignName:    name,
			From:            fromAddr,
			TemplatesDir:    templatesDir,
			CredentialsFile: credentialsFile,
			TokenFile:       tokenFile,
			SendLog:         sendLogFile,
			NoSendLog:       noSendLog,
			DryRun:          dryRun,
		}

		p, err := pipeline.New(ctx, opts)
		if err != nil {
			return err
		}

		if err := p.Run(ctx); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&fromAddr, "from", "", "sender address (overrides sender in the campaign file)")
	sendCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compose every message without dispatching")
	sendCmd.Flags().StringVar(&sendLogFile, "send-log", "", "send log file (default is email_log.txt)")
	sendCmd.Flags().BoolVar(&noSendLog, "no-send-log", false, "disable the send log")
}
