package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/invite"
	"github.com/mistops/mistctl/pkg/mist"
	"github.com/mistops/mistctl/pkg/util"
)

var (
	admOrgID   string
	admRole    string
	admSiteIDs []string
)

var adminRoles = []string{mist.RoleAdmin, mist.RoleWrite, mist.RoleRead, mist.RoleHelpdesk}

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "Manage org administrators",
}

var adminsInviteCmd = &cobra.Command{
	Use:   "invite <file.csv>",
	Short: "Invite administrators listed in a CSV file",
	Long: `Sends one admin invite per CSV row. Each row is "email,first name,
last name"; lines starting with '#' are skipped. Every invite of a run
carries the same role and scope: the whole org, or the sites given with
--site-ids.

Rows that fail to parse or whose invite is rejected are reported at the
end; they never abort the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orgID := admOrgID
		if orgID == "" {
			var err error
			if orgID, err = pickOrg(ctx); err != nil {
				return quitToDecline(err)
			}
		} else if err := validateID("org", orgID); err != nil {
			return err
		}

		role, err := resolveRole()
		if err != nil {
			return quitToDecline(err)
		}

		siteIDs, err := resolveInviteSites(ctx, orgID, admSiteIDs)
		if err != nil {
			return quitToDecline(err)
		}
		for _, siteID := range siteIDs {
			if err := validateID("site", siteID); err != nil {
				return err
			}
		}

		rows, rowErrs, err := invite.ParseCSVFile(args[0])
		if err != nil {
			return util.Exitf(util.ExitError, "reading %s: %v", args[0], err)
		}
		if len(rows) == 0 && len(rowErrs) == 0 {
			fmt.Println("No admins to invite... Exiting...")
			return nil
		}

		fmt.Println(cli.Center(" Sending Invites ", 80, '-'))
		privileges := invite.BuildPrivileges(orgID, role, siteIDs)
		summary := invite.Run(ctx, apiClient, orgID, privileges, rows, cli.NewProgress())
		summary.RowErrors = rowErrs

		fmt.Printf("\n%s, %s\n",
			cli.Green(fmt.Sprintf("%d invites sent", summary.Sent)),
			cli.Red(fmt.Sprintf("%d failed", summary.TotalFailed())))
		for _, rowErr := range summary.RowErrors {
			fmt.Printf("  %s\n", rowErr)
		}
		for _, result := range summary.Results {
			if result.Err != nil {
				fmt.Printf("  line %d (%s): %v\n", result.Row.Line, result.Row.Email, result.Err)
			}
		}

		admins, err := apiClient.ListAdmins(ctx, orgID)
		if err != nil {
			util.WithOrg(orgID).Warnf("listing admins after invites: %v", err)
			return nil
		}
		fmt.Println()
		printAdmins(admins)
		return nil
	},
}

var adminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the administrators of an org",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orgID := admOrgID
		if orgID == "" {
			var err error
			if orgID, err = pickOrg(ctx); err != nil {
				return quitToDecline(err)
			}
		} else if err := validateID("org", orgID); err != nil {
			return err
		}

		admins, err := apiClient.ListAdmins(ctx, orgID)
		if err != nil {
			return fmt.Errorf("listing admins: %w", err)
		}
		printAdmins(admins)
		return nil
	},
}

// resolveInviteSites returns the sites an invite run is restricted to:
// the --site-ids flag when given, otherwise an interactive choice between
// org-wide and a site selection. Org-wide is always an explicit answer,
// never a side effect of other flags.
func resolveInviteSites(ctx context.Context, orgID string, siteIDs []string) ([]string, error) {
	if len(siteIDs) > 0 {
		return siteIDs, nil
	}
	restrict, err := prompter.Confirm("Restrict the invites to specific sites")
	if err != nil {
		return nil, err
	}
	if !restrict {
		return nil, nil
	}
	return pickSites(ctx, orgID)
}

// resolveRole validates the --role flag, or asks interactively when the
// flag was left empty.
func resolveRole() (string, error) {
	if admRole != "" {
		for _, role := range adminRoles {
			if admRole == role {
				return admRole, nil
			}
		}
		return "", util.Exitf(util.ExitSetup, "invalid role %q, must be one of %s",
			admRole, strings.Join(adminRoles, ", "))
	}
	idx, err := prompter.Select("Select the role to assign", adminRoles)
	if err != nil {
		return "", err
	}
	return adminRoles[idx], nil
}

func init() {
	adminsInviteCmd.Flags().StringVarP(&admOrgID, "org-id", "o", "", "Org to invite the admins to")
	adminsInviteCmd.Flags().StringVar(&admRole, "role", "", "Role to assign (admin, write, read or helpdesk)")
	adminsInviteCmd.Flags().StringSliceVar(&admSiteIDs, "site-ids", nil, "Restrict the invites to these sites")

	adminsListCmd.Flags().StringVarP(&admOrgID, "org-id", "o", "", "Org to list the admins of")

	adminsCmd.AddCommand(adminsInviteCmd, adminsListCmd)
}
