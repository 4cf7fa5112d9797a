package firmware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/util"
)

// fakeSnapshotAPI scripts per-device outcomes.
type fakeSnapshotAPI struct {
	calls    []string
	statuses map[string]int
	errs     map[string]error
}

func (f *fakeSnapshotAPI) CreateDeviceSnapshot(ctx context.Context, siteID, deviceID string) (int, error) {
	f.calls = append(f.calls, siteID+"/"+deviceID)
	if err, ok := f.errs[deviceID]; ok {
		return 0, err
	}
	if status, ok := f.statuses[deviceID]; ok {
		return status, nil
	}
	return http.StatusOK, nil
}

func candidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{
			SiteID:   "s1",
			DeviceID: fmt.Sprintf("gw%d", i+1),
			Mac:      fmt.Sprintf("mac%d", i+1),
		}
	}
	return out
}

func TestRunSnapshots_FailuresDoNotAbortBatch(t *testing.T) {
	api := &fakeSnapshotAPI{
		errs:     map[string]error{"gw2": errors.New("connection reset")},
		statuses: map[string]int{"gw4": http.StatusBadRequest},
	}

	summary := RunSnapshots(context.Background(), api, candidates(5), cli.NopProgress{})

	if len(api.calls) != 5 {
		t.Errorf("API called %d times, want 5", len(api.calls))
	}
	if summary.Success != 3 {
		t.Errorf("Success = %d, want 3", summary.Success)
	}
	if summary.Failure != 2 {
		t.Errorf("Failure = %d, want 2", summary.Failure)
	}
	if summary.Results[1].Err == nil || summary.Results[3].Err == nil {
		t.Error("candidates 2 and 4 must carry their errors")
	}
	if summary.Results[0].Err != nil || summary.Results[2].Err != nil || summary.Results[4].Err != nil {
		t.Error("successful candidates must not carry errors")
	}
}

func TestRunSnapshots_Non200IsFailure(t *testing.T) {
	api := &fakeSnapshotAPI{statuses: map[string]int{"gw1": http.StatusAccepted}}
	summary := RunSnapshots(context.Background(), api, candidates(1), cli.NopProgress{})
	if summary.Failure != 1 {
		t.Errorf("HTTP 202 must count as failure, got %+v", summary)
	}
}

func TestRunSnapshots_MissingIDsFailWithoutAPICall(t *testing.T) {
	api := &fakeSnapshotAPI{}
	cands := []Candidate{
		{DeviceID: "gw1", Mac: "m1"},               // no site id
		{SiteID: "s1", Mac: "m2"},                  // no device id
		{SiteID: "s1", DeviceID: "gw3", Mac: "m3"}, // fine
	}

	summary := RunSnapshots(context.Background(), api, cands, cli.NopProgress{})

	if len(api.calls) != 1 {
		t.Errorf("API called %d times, want 1 (only the complete row)", len(api.calls))
	}
	if summary.Failure != 2 || summary.Success != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !errors.Is(summary.Results[0].Err, util.ErrMissingSiteID) {
		t.Errorf("result 0 err = %v", summary.Results[0].Err)
	}
	if !errors.Is(summary.Results[1].Err, util.ErrMissingDeviceID) {
		t.Errorf("result 1 err = %v", summary.Results[1].Err)
	}
}

func TestRunSnapshots_EmptyBatch(t *testing.T) {
	api := &fakeSnapshotAPI{}
	summary := RunSnapshots(context.Background(), api, nil, cli.NopProgress{})
	if summary.Success != 0 || summary.Failure != 0 || len(api.calls) != 0 {
		t.Errorf("empty batch did work: %+v", summary)
	}
}
