package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/settings"
	"github.com/mistops/mistctl/pkg/util"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent CLI settings",
	Long: `Settings live in ` + "`~/.mistctl/settings.yaml`" + ` and provide defaults
for the org, the credentials file, and the log file, so they don't have
to be repeated on every invocation.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		table := cli.NewTable("SETTING", "VALUE")
		table.Row("default_org_id", s.DefaultOrgID)
		table.Row("env_file", s.GetEnvFile())
		table.Row("log_file", s.GetLogFile())
		table.Row("report_dir", s.ReportDir)
		table.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		name, value := args[0], args[1]
		switch name {
		case "default_org_id":
			if err := validateID("org", value); err != nil {
				return err
			}
			s.DefaultOrgID = value
		case "env_file":
			s.EnvFile = value
		case "log_file":
			s.LogFile = value
		case "report_dir":
			s.ReportDir = value
		default:
			return util.Exitf(util.ExitSetup,
				"unknown setting %q, must be one of default_org_id, env_file, log_file, report_dir", name)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Printf("%s = %s\n", name, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all settings to their defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("Settings cleared.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearCmd)
}
