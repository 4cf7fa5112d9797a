package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/mist"
	"github.com/mistops/mistctl/pkg/util"
)

// Scope identifies whether a command walks an org or a single site.
type Scope struct {
	Kind string // "org" or "site"
	ID   string
}

// validateID checks that a flag-supplied org/site id is a UUID, catching
// pasted names or truncated ids before any API call burns on them.
func validateID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return util.Exitf(util.ExitSetup, "invalid %s id %q: not a UUID", kind, id)
	}
	return nil
}

// resolveScope turns the -o/-s flags into a scope, falling back to an
// interactive org-or-site picker when neither was given. The flags are
// declared mutually exclusive on the commands that use this.
func resolveScope(ctx context.Context, orgID, siteID string) (Scope, error) {
	switch {
	case orgID != "":
		if err := validateID("org", orgID); err != nil {
			return Scope{}, err
		}
		return Scope{Kind: "org", ID: orgID}, nil
	case siteID != "":
		if err := validateID("site", siteID); err != nil {
			return Scope{}, err
		}
		return Scope{Kind: "site", ID: siteID}, nil
	}

	choice, err := prompter.Select("Report scope:", []string{"whole org", "single site"})
	if err != nil {
		return Scope{}, quitToDecline(err)
	}
	if choice == 0 {
		orgID, err := pickOrg(ctx)
		if err != nil {
			return Scope{}, err
		}
		return Scope{Kind: "org", ID: orgID}, nil
	}
	orgID, err = pickOrg(ctx)
	if err != nil {
		return Scope{}, err
	}
	siteID, err = pickSite(ctx, orgID)
	if err != nil {
		return Scope{}, err
	}
	return Scope{Kind: "site", ID: siteID}, nil
}

// pickOrg lets the user choose among the orgs their account can reach,
// preferring the settings default when one is configured.
func pickOrg(ctx context.Context) (string, error) {
	if userSettings.DefaultOrgID != "" {
		return userSettings.DefaultOrgID, nil
	}

	orgs, err := apiClient.ListOrgs(ctx)
	if err != nil {
		return "", fmt.Errorf("listing orgs: %w", err)
	}
	if len(orgs) == 0 {
		return "", util.Exitf(util.ExitSetup, "this account has no org privileges")
	}
	if len(orgs) == 1 {
		return orgs[0].ID, nil
	}

	options := make([]string, len(orgs))
	for i, org := range orgs {
		options[i] = fmt.Sprintf("%s (%s)", org.Name, org.ID)
	}
	choice, err := prompter.Select("Available organizations:", options)
	if err != nil {
		return "", quitToDecline(err)
	}
	return orgs[choice].ID, nil
}

// pickSite lets the user choose one site of an org.
func pickSite(ctx context.Context, orgID string) (string, error) {
	sites, err := apiClient.ListSites(ctx, orgID)
	if err != nil {
		return "", fmt.Errorf("listing sites: %w", err)
	}
	if len(sites) == 0 {
		return "", util.Exitf(util.ExitSetup, "org %s has no sites", orgID)
	}

	options := make([]string, len(sites))
	for i, site := range sites {
		options[i] = fmt.Sprintf("%s (%s)", site.Name, site.ID)
	}
	choice, err := prompter.Select("Available sites:", options)
	if err != nil {
		return "", quitToDecline(err)
	}
	return sites[choice].ID, nil
}

// pickSites lets the user choose several sites by number, comma-separated.
func pickSites(ctx context.Context, orgID string) ([]string, error) {
	sites, err := apiClient.ListSites(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	if len(sites) == 0 {
		return nil, util.Exitf(util.ExitSetup, "org %s has no sites", orgID)
	}

	fmt.Println()
	for i, site := range sites {
		fmt.Printf("%d) %s (%s)\n", i, site.Name, site.ID)
	}
	answer, err := prompter.Input(fmt.Sprintf("Select sites (comma-separated numbers, 0-%d): ", len(sites)-1))
	if err != nil {
		return nil, err
	}

	indexes, err := parseIndexList(answer, len(sites))
	if err != nil {
		return nil, util.Exitf(util.ExitSetup, "%v", err)
	}
	siteIDs := make([]string, len(indexes))
	for i, idx := range indexes {
		siteIDs[i] = sites[idx].ID
	}
	return siteIDs, nil
}

// parseIndexList parses "0, 2,5" into unique in-range indexes.
func parseIndexList(s string, n int) ([]int, error) {
	var indexes []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(part, "%d", &idx); err != nil {
			return nil, fmt.Errorf("invalid selection %q: not a number", part)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("invalid selection %d: out of range 0-%d", idx, n-1)
		}
		if !seen[idx] {
			seen[idx] = true
			indexes = append(indexes, idx)
		}
	}
	if len(indexes) == 0 {
		return nil, errors.New("no sites selected")
	}
	return indexes, nil
}

// resolveReportPath places a bare report filename into the configured
// report directory. Paths that already name a directory are left alone.
func resolveReportPath(path string) string {
	if userSettings == nil || userSettings.ReportDir == "" {
		return path
	}
	if filepath.Dir(path) != "." {
		return path
	}
	return filepath.Join(userSettings.ReportDir, filepath.Base(path))
}

// quitToDecline maps a menu "q" into a clean user-declined exit.
func quitToDecline(err error) error {
	if errors.Is(err, cli.ErrQuit) {
		fmt.Println("Process stopped by the user. Exiting...")
		return util.Exitf(util.ExitOK, "%v", util.ErrUserDeclined)
	}
	return err
}

// printAdmins renders an org's admin roster as a table.
func printAdmins(admins []mist.Admin) {
	table := cli.NewTable("EMAIL", "FIRST NAME", "LAST NAME", "ROLES")
	for _, admin := range admins {
		roles := map[string]bool{}
		var roleList []string
		for _, p := range admin.Privileges {
			if !roles[p.Role] {
				roles[p.Role] = true
				roleList = append(roleList, p.Role)
			}
		}
		table.Row(admin.Email, admin.FirstName, admin.LastName, strings.Join(roleList, ","))
	}
	table.Flush()
}
