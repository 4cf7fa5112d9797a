package firmware

import "strings"

// Candidate is a device selected for a firmware snapshot, extracted from a
// report row. SiteID or DeviceID may be empty when the report was edited
// by hand; the batch treats that as a per-item failure, not a crash.
type Candidate struct {
	SiteID   string
	DeviceID string
	Name     string
	Mac      string
	Model    string
}

// Report column names the trigger reads.
const (
	colSiteID       = "cluster_site_id"
	colDeviceID     = "cluster_device_id"
	colName         = "cluster_name"
	colMac          = "module_mac"
	colModel        = "module_model"
	colNeedSnapshot = "module_need_snapshot"
)

// SelectCandidates filters report rows down to snapshot candidates. A row
// is selected iff its model contains "SRX", its need-snapshot flag is the
// string "True", the optional site filter matches, and its device id has
// not been seen yet (first occurrence wins; a clustered gateway appears
// once per module but needs only one snapshot).
func SelectCandidates(rows []map[string]string, siteID string) []Candidate {
	var candidates []Candidate
	seen := map[string]bool{}
	for _, row := range rows {
		if !strings.Contains(row[colModel], "SRX") {
			continue
		}
		if siteID != "" && row[colSiteID] != siteID {
			continue
		}
		if row[colNeedSnapshot] != "True" {
			continue
		}
		if seen[row[colDeviceID]] {
			continue
		}
		seen[row[colDeviceID]] = true
		candidates = append(candidates, Candidate{
			SiteID:   row[colSiteID],
			DeviceID: row[colDeviceID],
			Name:     row[colName],
			Mac:      row[colMac],
			Model:    row[colModel],
		})
	}
	return candidates
}
