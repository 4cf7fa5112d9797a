package mist

// Privilege is one entry of an admin's (or invite's) access grants.
type Privilege struct {
	Scope    string `json:"scope"` // "org" or "site"
	OrgID    string `json:"org_id"`
	OrgName  string `json:"org_name,omitempty"`
	SiteID   string `json:"site_id,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Role     string `json:"role"` // admin | write | read | helpdesk
}

// Admin roles accepted by the Mist cloud.
const (
	RoleAdmin    = "admin"
	RoleWrite    = "write"
	RoleRead     = "read"
	RoleHelpdesk = "helpdesk"
)

// Self describes the authenticated admin, as returned by GET /api/v1/self.
type Self struct {
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Privileges []Privilege `json:"privileges"`
}

// Org is the subset of org fields the CLI uses.
type Org struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Site is the subset of site fields the CLI uses.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OrgID       string `json:"org_id"`
	Timezone    string `json:"timezone,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Admin is an org administrator, as listed by GET /api/v1/orgs/:org_id/admins.
type Admin struct {
	AdminID    string      `json:"admin_id"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Privileges []Privilege `json:"privileges,omitempty"`
}

// Invite is the payload of POST /api/v1/orgs/:org_id/invites.
type Invite struct {
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name,omitempty"`
	LastName   string      `json:"last_name,omitempty"`
	Privileges []Privilege `json:"privileges"`
}

// ModuleStat is the per-member firmware state of a gateway cluster node.
type ModuleStat struct {
	Serial          string `json:"serial"`
	Mac             string `json:"mac"`
	Model           string `json:"model"`
	Version         string `json:"version"`
	BackupVersion   string `json:"backup_version"`
	PendingVersion  string `json:"pending_version"`
	RecoveryVersion string `json:"recovery_version"`
}

// GatewayStat is a gateway device stat object. A clustered SRX reports its
// members under module_stat and module2_stat.
type GatewayStat struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	SiteID      string       `json:"site_id"`
	OrgID       string       `json:"org_id"`
	Model       string       `json:"model"`
	Version     string       `json:"version"`
	Mac         string       `json:"mac"`
	ModuleStat  []ModuleStat `json:"module_stat,omitempty"`
	Module2Stat []ModuleStat `json:"module2_stat,omitempty"`
}
