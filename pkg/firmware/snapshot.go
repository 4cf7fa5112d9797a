package firmware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/util"
)

// SnapshotAPI is the one remote call the snapshot batch needs. Satisfied
// by *mist.Client.
type SnapshotAPI interface {
	CreateDeviceSnapshot(ctx context.Context, siteID, deviceID string) (int, error)
}

// SnapshotResult is the outcome of one candidate. Err is nil on success.
type SnapshotResult struct {
	Candidate Candidate
	Status    int
	Err       error
}

// SnapshotSummary aggregates a whole batch run.
type SnapshotSummary struct {
	Results []SnapshotResult
	Success int
	Failure int
}

// RunSnapshots triggers a firmware snapshot on each candidate in order,
// one blocking call at a time. A candidate failure is recorded and the
// batch continues; nothing short of context cancellation aborts it. Only
// HTTP 200 counts as success. Missing site or device ids fail the item
// without any API call.
func RunSnapshots(ctx context.Context, api SnapshotAPI, candidates []Candidate, progress cli.Progress) SnapshotSummary {
	summary := SnapshotSummary{Results: make([]SnapshotResult, 0, len(candidates))}
	progress.SetTotal(len(candidates))

	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		result := SnapshotResult{Candidate: cand}
		message := fmt.Sprintf("Processing device %s", cand.DeviceID)
		if cand.DeviceID == "" {
			message = fmt.Sprintf("Processing device %s", cand.Mac)
		}
		progress.Step(message)

		switch {
		case cand.SiteID == "":
			result.Err = fmt.Errorf("device %s: %w", cand.Mac, util.ErrMissingSiteID)
		case cand.DeviceID == "":
			result.Err = fmt.Errorf("device %s: %w", cand.Mac, util.ErrMissingDeviceID)
		default:
			status, err := api.CreateDeviceSnapshot(ctx, cand.SiteID, cand.DeviceID)
			result.Status = status
			if err != nil {
				result.Err = err
			} else if status != http.StatusOK {
				result.Err = fmt.Errorf("unexpected HTTP status %d", status)
			}
		}

		if result.Err != nil {
			util.WithDevice(cand.DeviceID).Errorf("snapshot failed: %v", result.Err)
			progress.Failure(message)
			summary.Failure++
		} else {
			progress.Success(message)
			summary.Success++
		}
		summary.Results = append(summary.Results, result)
	}

	progress.End()
	return summary
}
