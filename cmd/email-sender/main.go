/*
Package main provides the CLI entry point for the email sender.
*/
package main

import (
	"os"

	"github.com/wmontagu/email-sender/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
