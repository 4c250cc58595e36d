package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmontagu/email-sender/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Gmail and cache the token",
	Long: `Run the OAuth2 flow eagerly and persist the token, without
sending anything.

A browser window opens for consent; the authorization redirect is captured
on http://localhost:8080/ (register that URI on the OAuth client). The
resulting token is written next to the credentials and reused by later
runs until it can no longer be refreshed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := auth.NewSession(cmd.Context(), auth.Options{
			CredentialsFile: credentialsFile,
			TokenFile:       tokenFile,
		})
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		fmt.Println("✓ Authentication successful")
		return nil
	},
}
