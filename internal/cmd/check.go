package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sender "github.com/wmontagu/email-sender"
	"github.com/wmontagu/email-sender/internal/config"
	"github.com/wmontagu/email-sender/internal/tmpl"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the campaign file",
	Long: `Check that the campaign file is valid.

This validates:
  - YAML/JSON syntax
  - Required fields (subject, template, recipients)
  - Recipient email addresses
  - That every referenced template file exists`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = config.FindFile()
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("campaign file not found: %s", configPath)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		dir := cfg.TemplatesDir
		if templatesDir != "" {
			dir = templatesDir
		}
		store := tmpl.NewStore(dir)
		for _, c := range cfg.Campaigns.All() {
			if _, err := store.Load(c.Template); err != nil {
				return fmt.Errorf("campaign %s: %w", c.Name, err)
			}
		}

		fmt.Printf("✓ Campaign file %s is valid (%d campaign(s))\n", configPath, cfg.Campaigns.Len())
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new campaign file",
	Long: `Initialize a new campaigns.yaml campaign file.

This creates a basic campaign file that you can customize, along with a
templates directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "campaigns.yaml"
		if cfgFile != "" {
			configPath = cfgFile
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("campaign file already exists: %s", configPath)
		}

		if err := os.WriteFile(configPath, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write campaign file: %w", err)
		}

		dir := templatesDir
		if dir == "" {
			dir = config.DefaultTemplatesDir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create templates directory: %w", err)
		}

		fmt.Printf("✓ Created %s\n", configPath)
		fmt.Println("\nEdit this file to define your campaigns, and put templates in", dir+string(os.PathSeparator))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build date of email-sender.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("email-sender %s\n", sender.Version)
		if sender.GitCommit != "" {
			fmt.Printf("  Commit: %s\n", sender.GitCommit)
		}
		if sender.BuildDate != "" {
			fmt.Printf("  Built:  %s\n", sender.BuildDate)
		}
	},
}
