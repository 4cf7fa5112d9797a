package firmware

import (
	"testing"

	"github.com/mistops/mistctl/pkg/mist"
)

func TestNeedSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		module mist.ModuleStat
		want   bool
	}{
		{"backup matches", mist.ModuleStat{Version: "23.4R1", BackupVersion: "23.4R1"}, false},
		{"backup stale", mist.ModuleStat{Version: "23.4R2", BackupVersion: "23.4R1"}, true},
		{"no backup at all", mist.ModuleStat{Version: "23.4R1"}, true},
		{"empty module", mist.ModuleStat{}, false},
	}
	for _, tt := range tests {
		if got := NeedSnapshot(tt.module); got != tt.want {
			t.Errorf("%s: NeedSnapshot = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNeedReboot(t *testing.T) {
	if NeedReboot(mist.ModuleStat{PendingVersion: ""}) {
		t.Error("empty pending version should not need reboot")
	}
	if !NeedReboot(mist.ModuleStat{PendingVersion: "23.4R2"}) {
		t.Error("staged pending version should need reboot")
	}
}

func TestBuildRows_ClusterYieldsTwoRows(t *testing.T) {
	gw := mist.GatewayStat{
		ID:      "gw1",
		Name:    "branch-a",
		SiteID:  "s1",
		Version: "23.4R1",
		ModuleStat: []mist.ModuleStat{
			{Serial: "A1", Model: "SRX340", Version: "23.4R1", BackupVersion: "23.2R1"},
		},
		Module2Stat: []mist.ModuleStat{
			{Serial: "A2", Model: "SRX340", Version: "23.4R1", BackupVersion: "23.4R1", PendingVersion: "23.4R2"},
		},
	}

	rows := BuildRows([]mist.GatewayStat{gw})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Serial != "A1" || rows[1].Serial != "A2" {
		t.Errorf("module order wrong: %q then %q", rows[0].Serial, rows[1].Serial)
	}
	for _, row := range rows {
		if row.ClusterDeviceID != "gw1" || row.ClusterSiteID != "s1" {
			t.Errorf("cluster fields not carried: %+v", row)
		}
	}
	if !rows[0].NeedSnapshot || rows[1].NeedSnapshot {
		t.Errorf("need_snapshot: got %v/%v, want true/false", rows[0].NeedSnapshot, rows[1].NeedSnapshot)
	}
	if rows[0].NeedReboot || !rows[1].NeedReboot {
		t.Errorf("need_reboot: got %v/%v, want false/true", rows[0].NeedReboot, rows[1].NeedReboot)
	}
}

func TestBuildRows_MissingModuleStatStillEmitsRow(t *testing.T) {
	rows := BuildRows([]mist.GatewayStat{{ID: "gw2", Name: "no-stats", SiteID: "s1"}})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Serial != "" || rows[0].NeedSnapshot {
		t.Errorf("empty module should produce empty, compliant row: %+v", rows[0])
	}
}

func TestModuleRowFields_Order(t *testing.T) {
	fields := ModuleRow{}.Fields()
	want := []string{
		"cluster_name", "cluster_version", "cluster_device_id", "cluster_site_id",
		"module_serial", "module_mac", "module_model", "module_version",
		"module_backup_version", "module_need_snapshot", "module_pending_version",
		"module_need_reboot",
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.Key != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.Key, want[i])
		}
	}
}

func TestBuildComplianceRows(t *testing.T) {
	gw := mist.GatewayStat{
		ID: "gw1", Name: "branch-a", SiteID: "s1", Version: "23.4R1",
		ModuleStat: []mist.ModuleStat{{
			Serial: "A1", Version: "23.4R1", BackupVersion: "23.4R1", RecoveryVersion: "22.4R3",
		}},
	}
	rows := BuildComplianceRows([]mist.GatewayStat{gw})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if !rows[0].Compliance {
		t.Error("matching versions must be compliant")
	}
	if rows[0].Snapshot != "22.4R3" {
		t.Errorf("Snapshot = %q, want recovery version", rows[0].Snapshot)
	}
}
