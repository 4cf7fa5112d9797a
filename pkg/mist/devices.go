package mist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GatewayPager walks the gateway device stats of an org or a site.
type GatewayPager struct {
	p *Pager
}

// ListOrgGatewayStats pages through all gateway stats of an org.
func (c *Client) ListOrgGatewayStats(orgID string) *GatewayPager {
	path := fmt.Sprintf("/api/v1/orgs/%s/stats/devices", orgID)
	return &GatewayPager{p: c.NewPager(path, url.Values{"type": {"gateway"}}, DefaultPageLimit)}
}

// ListSiteGatewayStats pages through all gateway stats of a site.
func (c *Client) ListSiteGatewayStats(siteID string) *GatewayPager {
	path := fmt.Sprintf("/api/v1/sites/%s/stats/devices", siteID)
	return &GatewayPager{p: c.NewPager(path, url.Values{"type": {"gateway"}}, DefaultPageLimit)}
}

// Next returns the next page of gateway stats, or nil when exhausted.
func (g *GatewayPager) Next(ctx context.Context) ([]GatewayStat, error) {
	items, err := g.p.Next(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return nil, nil
	}
	stats := make([]GatewayStat, 0, len(items))
	for _, raw := range items {
		var gw GatewayStat
		if err := json.Unmarshal(raw, &gw); err != nil {
			return nil, fmt.Errorf("parsing gateway stat: %w", err)
		}
		stats = append(stats, gw)
	}
	return stats, nil
}

// All drains the pager, concatenating every page.
func (g *GatewayPager) All(ctx context.Context) ([]GatewayStat, error) {
	var all []GatewayStat
	for {
		page, err := g.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return all, nil
		}
		all = append(all, page...)
	}
}

// CreateDeviceSnapshot triggers a firmware snapshot on one device and
// returns the HTTP status. Only 200 counts as success; the status is
// surfaced so batch callers can classify failures without parsing errors.
func (c *Client) CreateDeviceSnapshot(ctx context.Context, siteID, deviceID string) (int, error) {
	path := fmt.Sprintf("/api/v1/sites/%s/devices/%s/snapshot", siteID, deviceID)
	return c.PostJSON(ctx, path, nil, nil)
}
