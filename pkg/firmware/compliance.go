package firmware

import (
	"github.com/mistops/mistctl/pkg/mist"
)

// ComplianceRow is one line of the backup-compliance report. It mirrors
// ModuleRow but centers on whether the backup copy matches the running
// firmware, and also carries the recovery snapshot version.
type ComplianceRow struct {
	ClusterName     string
	ClusterVersion  string
	ClusterDeviceID string
	ClusterSiteID   string
	Serial          string
	Mac             string
	Version         string
	Snapshot        string
	Backup          string
	Pending         string
	Compliance      bool
}

func (r ComplianceRow) Fields() []Field {
	return []Field{
		{"cluster_name", r.ClusterName},
		{"cluster_version", r.ClusterVersion},
		{"cluster_device_id", r.ClusterDeviceID},
		{"cluster_site_id", r.ClusterSiteID},
		{"module_serial", r.Serial},
		{"module_mac", r.Mac},
		{"module_version", r.Version},
		{"module_snapshot", r.Snapshot},
		{"module_backup", r.Backup},
		{"module_pending", r.Pending},
		{"module_compliance", formatBool(r.Compliance)},
	}
}

func complianceRow(gw mist.GatewayStat, m mist.ModuleStat) ComplianceRow {
	return ComplianceRow{
		ClusterName:     gw.Name,
		ClusterVersion:  gw.Version,
		ClusterDeviceID: gw.ID,
		ClusterSiteID:   gw.SiteID,
		Serial:          m.Serial,
		Mac:             m.Mac,
		Version:         m.Version,
		Snapshot:        m.RecoveryVersion,
		Backup:          m.BackupVersion,
		Pending:         m.PendingVersion,
		Compliance:      m.Version == m.BackupVersion,
	}
}

// BuildComplianceRows flattens gateway stats into compliance rows, one per
// module, with the same cluster expansion rules as BuildRows.
func BuildComplianceRows(gateways []mist.GatewayStat) []ComplianceRow {
	rows := make([]ComplianceRow, 0, len(gateways))
	for _, gw := range gateways {
		rows = append(rows, complianceRow(gw, firstModule(gw.ModuleStat)))
		if len(gw.Module2Stat) > 0 {
			rows = append(rows, complianceRow(gw, gw.Module2Stat[0]))
		}
	}
	return rows
}
