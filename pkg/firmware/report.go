// Package firmware builds and consumes gateway firmware reports: the
// flattened per-module CSV, the backup-compliance view, and the snapshot
// remediation batch driven by a report read back from disk.
package firmware

import (
	"github.com/mistops/mistctl/pkg/mist"
)

// Field is one ordered CSV cell: the column name and its rendered value.
type Field struct {
	Key   string
	Value string
}

// Record is anything that renders itself as an ordered list of CSV fields.
type Record interface {
	Fields() []Field
}

// ModuleRow is one line of the firmware report: one physical module of a
// gateway cluster. A clustered SRX contributes two rows.
type ModuleRow struct {
	ClusterName     string
	ClusterVersion  string
	ClusterDeviceID string
	ClusterSiteID   string
	Serial          string
	Mac             string
	Model           string
	Version         string
	BackupVersion   string
	NeedSnapshot    bool
	PendingVersion  string
	NeedReboot      bool
}

// Fields renders the row in report column order. Booleans render as
// "True"/"False"; the snapshot trigger matches on the exact string "True".
func (r ModuleRow) Fields() []Field {
	return []Field{
		{"cluster_name", r.ClusterName},
		{"cluster_version", r.ClusterVersion},
		{"cluster_device_id", r.ClusterDeviceID},
		{"cluster_site_id", r.ClusterSiteID},
		{"module_serial", r.Serial},
		{"module_mac", r.Mac},
		{"module_model", r.Model},
		{"module_version", r.Version},
		{"module_backup_version", r.BackupVersion},
		{"module_need_snapshot", formatBool(r.NeedSnapshot)},
		{"module_pending_version", r.PendingVersion},
		{"module_need_reboot", formatBool(r.NeedReboot)},
	}
}

// NeedSnapshot reports whether a module's running firmware differs from
// its backup copy. Pure function of the module record.
func NeedSnapshot(m mist.ModuleStat) bool {
	return m.Version != m.BackupVersion
}

// NeedReboot reports whether a firmware version is staged awaiting reboot.
func NeedReboot(m mist.ModuleStat) bool {
	return m.PendingVersion != ""
}

// moduleRow flattens one module of a cluster into a report row.
func moduleRow(gw mist.GatewayStat, m mist.ModuleStat) ModuleRow {
	return ModuleRow{
		ClusterName:     gw.Name,
		ClusterVersion:  gw.Version,
		ClusterDeviceID: gw.ID,
		ClusterSiteID:   gw.SiteID,
		Serial:          m.Serial,
		Mac:             m.Mac,
		Model:           m.Model,
		Version:         m.Version,
		BackupVersion:   m.BackupVersion,
		NeedSnapshot:    NeedSnapshot(m),
		PendingVersion:  m.PendingVersion,
		NeedReboot:      NeedReboot(m),
	}
}

// BuildRows flattens gateway stats into report rows, one per module.
// The primary module is always emitted, even when the stats object carries
// no module_stat entry; the second module only when present.
func BuildRows(gateways []mist.GatewayStat) []ModuleRow {
	rows := make([]ModuleRow, 0, len(gateways))
	for _, gw := range gateways {
		rows = append(rows, moduleRow(gw, firstModule(gw.ModuleStat)))
		if len(gw.Module2Stat) > 0 {
			rows = append(rows, moduleRow(gw, gw.Module2Stat[0]))
		}
	}
	return rows
}

func firstModule(modules []mist.ModuleStat) mist.ModuleStat {
	if len(modules) > 0 {
		return modules[0]
	}
	return mist.ModuleStat{}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
