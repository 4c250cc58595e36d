/*
Package cmd provides the CLI commands for the email sender.
*/
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	verbose         bool
	debug           bool
	templatesDir    string
	credentialsFile string
	tokenFile       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "email-sender",
	Short: "Send personalized bulk email through the Gmail API",
	Long: `email-sender is a configuration-driven batch mailer. It reads a
campaign file mapping campaign names to a subject, a plain-text template,
and a recipient list, personalizes the template per recipient, and sends
each message through the Gmail API using OAuth2.

Templates use the literal marker {} as a positional placeholder, replaced
left to right by each recipient's fill_items. A recipient with a title gets
a "Dear <title>," greeting line prepended.

Example:
  email-sender send             # send every campaign
  email-sender send welcome     # send one campaign
  email-sender send --dry-run   # compose without dispatching
  email-sender check            # validate the campaign file
  email-sender auth             # authenticate and cache the token`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "campaign file (default is campaigns.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&templatesDir, "templates", "", "templates directory (default is templates)")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials", "credentials.json", "OAuth client secret file")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token", "token.json", "cached OAuth token file")

	// Add subcommands
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
