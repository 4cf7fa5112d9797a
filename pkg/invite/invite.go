// Package invite implements bulk admin invitations driven by a CSV file:
// one invite API call per row, with identical privileges for every row and
// per-row error capture so a bad line never silently discards the rest.
package invite

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/mist"
	"github.com/mistops/mistctl/pkg/util"
)

// Row is one parsed invite: email, first name, last name.
type Row struct {
	Line      int
	Email     string
	FirstName string
	LastName  string
}

// ParseCSV reads the 3-column invite file. Lines starting with '#' are
// skipped. Malformed lines (parse errors, fewer than 3 columns) are
// captured per row; parsing continues with the next line. Columns beyond
// the third are ignored.
func ParseCSV(r io.Reader) ([]Row, util.RowErrors, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []Row
	var rowErrs util.RowErrors
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, rowErrs, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs = append(rowErrs, &util.RowError{Line: parseErr.Line, Err: parseErr.Err})
				continue
			}
			return rows, rowErrs, fmt.Errorf("reading invite file: %w", err)
		}
		// Physical line of the record; comment lines shift it past a
		// simple row count.
		line, _ := cr.FieldPos(0)
		if len(record) < 3 {
			rowErrs = append(rowErrs, &util.RowError{
				Line: line,
				Err:  fmt.Errorf("expected 3 columns (email, first name, last name), got %d", len(record)),
			})
			continue
		}
		rows = append(rows, Row{
			Line:      line,
			Email:     record[0],
			FirstName: record[1],
			LastName:  record[2],
		})
	}
}

// ParseCSVFile reads the invite file from disk.
func ParseCSVFile(path string) ([]Row, util.RowErrors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// BuildPrivileges expands an org id, a role, and an optional site list
// into the privilege grants attached to every invite of a run. An empty
// site list grants org-wide access; otherwise one site grant per site.
func BuildPrivileges(orgID, role string, siteIDs []string) []mist.Privilege {
	if len(siteIDs) == 0 {
		return []mist.Privilege{{Scope: "org", OrgID: orgID, Role: role}}
	}
	privileges := make([]mist.Privilege, 0, len(siteIDs))
	for _, siteID := range siteIDs {
		privileges = append(privileges, mist.Privilege{
			Scope:  "site",
			OrgID:  orgID,
			SiteID: siteID,
			Role:   role,
		})
	}
	return privileges
}

// API is the one remote call the invite batch needs. Satisfied by
// *mist.Client.
type API interface {
	CreateInvite(ctx context.Context, orgID string, invite mist.Invite) error
}

// Result ties one row to its invite outcome.
type Result struct {
	Row Row
	Err error
}

// Summary aggregates a whole invite run, separating rows that never
// parsed from rows whose API call failed.
type Summary struct {
	Sent      int
	Failed    int
	Results   []Result
	RowErrors util.RowErrors
}

// TotalFailed counts both parse failures and API failures.
func (s Summary) TotalFailed() int {
	return s.Failed + len(s.RowErrors)
}

// Run sends one invite per row with the same privileges. A row's failure
// is recorded and the batch continues.
func Run(ctx context.Context, api API, orgID string, privileges []mist.Privilege, rows []Row, progress cli.Progress) Summary {
	summary := Summary{Results: make([]Result, 0, len(rows))}
	progress.SetTotal(len(rows))

	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		message := fmt.Sprintf("Inviting %s", row.Email)
		progress.Step(message)

		err := api.CreateInvite(ctx, orgID, mist.Invite{
			Email:      row.Email,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Privileges: privileges,
		})
		if err != nil {
			util.WithOrg(orgID).Errorf("invite %s: %v", row.Email, err)
			progress.Failure(message)
			summary.Failed++
		} else {
			progress.Success(message)
			summary.Sent++
		}
		summary.Results = append(summary.Results, Result{Row: row, Err: err})
	}

	progress.End()
	return summary
}
