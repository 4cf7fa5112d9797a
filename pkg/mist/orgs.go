package mist

import (
	"context"
	"fmt"
	"sort"
)

// GetSelf returns the authenticated admin. Used both as the login check
// and as the source of the org list the admin can reach.
func (c *Client) GetSelf(ctx context.Context) (*Self, error) {
	var self Self
	if err := c.GetJSON(ctx, "/api/v1/self", nil, &self); err != nil {
		return nil, err
	}
	return &self, nil
}

// ListOrgs derives the orgs the admin can access from their privileges,
// sorted by name. Site-scoped privileges contribute their parent org.
func (c *Client) ListOrgs(ctx context.Context) ([]Org, error) {
	self, err := c.GetSelf(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var orgs []Org
	for _, p := range self.Privileges {
		if p.OrgID == "" || seen[p.OrgID] {
			continue
		}
		seen[p.OrgID] = true
		orgs = append(orgs, Org{ID: p.OrgID, Name: p.OrgName})
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs, nil
}

// ListSites returns all sites of an org, sorted by name.
func (c *Client) ListSites(ctx context.Context, orgID string) ([]Site, error) {
	var sites []Site
	path := fmt.Sprintf("/api/v1/orgs/%s/sites", orgID)
	if err := c.GetJSON(ctx, path, nil, &sites); err != nil {
		return nil, err
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

// ListAdmins returns the administrators of an org.
func (c *Client) ListAdmins(ctx context.Context, orgID string) ([]Admin, error) {
	var admins []Admin
	path := fmt.Sprintf("/api/v1/orgs/%s/admins", orgID)
	if err := c.GetJSON(ctx, path, nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateInvite sends one admin invitation for an org.
func (c *Client) CreateInvite(ctx context.Context, orgID string, invite Invite) error {
	path := fmt.Sprintf("/api/v1/orgs/%s/invites", orgID)
	_, err := c.PostJSON(ctx, path, invite, nil)
	return err
}
