package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mistops/mistctl/pkg/cli"
)

var sitesOrgID string

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Browse the orgs the current account can access",
}

var orgsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accessible orgs",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgs, err := apiClient.ListOrgs(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing orgs: %w", err)
		}
		table := cli.NewTable("NAME", "ORG ID")
		for _, org := range orgs {
			table.Row(org.Name, org.ID)
		}
		table.Flush()
		return nil
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Browse the sites of an org",
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sites of an org",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orgID := sitesOrgID
		if orgID == "" {
			var err error
			if orgID, err = pickOrg(ctx); err != nil {
				return quitToDecline(err)
			}
		} else if err := validateID("org", orgID); err != nil {
			return err
		}

		sites, err := apiClient.ListSites(ctx, orgID)
		if err != nil {
			return fmt.Errorf("listing sites: %w", err)
		}
		table := cli.NewTable("NAME", "SITE ID", "COUNTRY")
		for _, site := range sites {
			table.Row(site.Name, site.ID, site.CountryCode)
		}
		table.Flush()
		return nil
	},
}

func init() {
	sitesListCmd.Flags().StringVarP(&sitesOrgID, "org-id", "o", "", "Org to list the sites of")

	orgsCmd.AddCommand(orgsListCmd)
	sitesCmd.AddCommand(sitesListCmd)
}
