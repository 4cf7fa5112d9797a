// Mistctl - Mist Cloud Administration Tool
//
// A CLI tool for administrative operations against the Juniper Mist cloud:
//   - Bulk admin invitations from a CSV file
//   - Gateway firmware reports (per-module version, backup, pending state)
//   - Firmware snapshot remediation driven by a report CSV
//
// Credentials come from a mist env file (default ~/.mist_env) holding
// MIST_HOST plus either MIST_APITOKEN or MIST_USER/MIST_PASSWORD.
//
// Examples:
//
//	mistctl orgs list
//	mistctl gateways report -o 203d3d02-xxxx-xxxx-xxxx-76896a3330f4
//	mistctl gateways snapshot -f ./report_gateway_firmware.csv
//	mistctl admins invite ./new_admins.csv -o <org_id> --role write
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/mist"
	"github.com/mistops/mistctl/pkg/settings"
	"github.com/mistops/mistctl/pkg/util"
	"github.com/mistops/mistctl/pkg/version"
)

var (
	// Global option flags
	envFile string // -e, --env
	logFile string // -l, --log-file
	verbose bool   // -v, --verbose

	// Global state, initialized in PersistentPreRunE
	userSettings *settings.Settings
	apiClient    *mist.Client
	self         *mist.Self
	prompter     cli.Prompter
	logCloser    func()
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser()
	}
	if err != nil {
		code := util.ExitCode(err)
		if code == util.ExitOK {
			// Clean stop (user declined, nothing to do); message already printed.
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, cli.Red("Error: ")+err.Error())
		os.Exit(code)
	}
}

var rootCmd = &cobra.Command{
	Use:               "mistctl",
	Short:             "Mist Cloud Administration Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Mistctl automates administrative operations against the Mist cloud:
bulk admin invitations, gateway firmware reports, and firmware snapshot
remediation.

Credentials are read from a mist env file (default ~/.mist_env). Commands
that need an org or site accept it as a flag and fall back to an
interactive picker on a terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		prompter = cli.NewConsolePrompter()

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if envFile == "" {
			envFile = userSettings.GetEnvFile()
		}
		if logFile == "" {
			logFile = userSettings.GetLogFile()
		}

		if verbose {
			util.SetLogLevel("debug")
		} else if closer, err := util.SetLogFile(logFile); err != nil {
			util.Warnf("Could not open log file %s: %v", logFile, err)
		} else {
			logCloser = func() { closer.Close() }
		}

		creds, err := mist.LoadCredentials(envFile)
		if err != nil {
			return util.Exitf(util.ExitSetup, "loading credentials: %v", err)
		}

		apiClient, self, err = mist.Login(cmd.Context(), creds, func(username string) (string, error) {
			return prompter.Password(fmt.Sprintf("Password for %s: ", username))
		})
		if err != nil {
			return util.Exitf(util.ExitSetup, "login failed: %v", err)
		}
		util.Infof("authenticated as %s against %s", self.Email, apiClient.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "Credentials env file (default ~/.mist_env)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "", "Log file (default ./script.log)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr instead of the log file")

	rootCmd.AddGroup(
		&cobra.Group{ID: "admins", Title: "Admin Management:"},
		&cobra.Group{ID: "gateways", Title: "Gateway Firmware:"},
		&cobra.Group{ID: "inventory", Title: "Inventory:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	adminsCmd.GroupID = "admins"
	gatewaysCmd.GroupID = "gateways"
	orgsCmd.GroupID = "inventory"
	sitesCmd.GroupID = "inventory"
	settingsCmd.GroupID = "meta"
	versionCmd.GroupID = "meta"

	rootCmd.AddCommand(adminsCmd, gatewaysCmd, orgsCmd, sitesCmd, settingsCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("mistctl dev build")
		} else {
			fmt.Printf("mistctl %s\n", version.Info())
		}
	},
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings,
// help, version, or completion command; those run without a session.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings", "completion":
			return true
		}
	}
	return false
}
