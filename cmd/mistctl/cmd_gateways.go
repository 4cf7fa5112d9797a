package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mistops/mistctl/pkg/cli"
	"github.com/mistops/mistctl/pkg/firmware"
	"github.com/mistops/mistctl/pkg/mist"
	"github.com/mistops/mistctl/pkg/util"
)

var (
	gwOrgID             string
	gwSiteID            string
	gwReportOutFile     string
	gwComplianceOutFile string
	gwAppendDT          bool
	gwAppendTS          bool
	gwInFile            string
	gwAutoApprove       bool
)

var gatewaysCmd = &cobra.Command{
	Use:     "gateways",
	Short:   "Gateway firmware reporting and remediation",
	Aliases: []string{"gw"},
}

var gatewaysReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report per-module firmware and backup state to a CSV",
	Long: `Walks all gateway devices of an org or site and writes one CSV row per
physical module: firmware version, backup version, pending version, and
whether the module needs a snapshot or a reboot.

The report feeds 'mistctl gateways snapshot'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := resolveScope(cmd.Context(), gwOrgID, gwSiteID)
		if err != nil {
			return err
		}

		rows, err := collectModuleRows(cmd.Context(), scope)
		if err != nil {
			return err
		}

		mode := firmware.SuffixNone
		if gwAppendDT {
			mode = firmware.SuffixDatetime
		} else if gwAppendTS {
			mode = firmware.SuffixTimestamp
		}
		outFile := firmware.OutputPath(resolveReportPath(gwReportOutFile), mode, time.Now())

		fmt.Println(cli.Center(" Saving Data ", 80, '-'))
		comment := fmt.Sprintf("Gateways Firmware Backup for %s %s", scope.Kind, scope.ID)
		if err := firmware.SaveReport(outFile, comment, rows); err != nil {
			return err
		}
		fmt.Printf("%d modules written to %s\n", len(rows), outFile)

		needSnapshot := 0
		for _, row := range rows {
			if row.NeedSnapshot {
				needSnapshot++
			}
		}
		if needSnapshot > 0 {
			fmt.Println(cli.Yellow(fmt.Sprintf("%d modules need a firmware snapshot.", needSnapshot)))
		} else {
			fmt.Println(cli.Green("All modules have an up-to-date firmware backup."))
		}
		return nil
	},
}

var gatewaysSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Trigger firmware snapshots on SRX devices flagged by a report",
	Long: `Reads the CSV produced by 'mistctl gateways report', keeps the SRX
modules flagged as needing a snapshot (optionally restricted to one
site), deduplicates clusters by device id, and triggers one snapshot API
call per device.

Unless --auto-approve is set, the candidate list is printed and an
interactive confirmation is required. A single device's failure never
aborts the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if gwSiteID != "" {
			if err := validateID("site", gwSiteID); err != nil {
				return err
			}
		}

		rows, err := firmware.ReadReportFile(resolveReportPath(gwInFile))
		if err != nil {
			return util.Exitf(util.ExitError, "reading report: %v", err)
		}

		candidates := firmware.SelectCandidates(rows, gwSiteID)
		if len(candidates) == 0 {
			fmt.Println("All the gateways are compliant... Exiting...")
			return nil
		}

		if gwAutoApprove {
			util.Infof("auto-approve set, processing %d devices without confirmation", len(candidates))
		} else {
			printCandidates(candidates)
			approved, err := prompter.Confirm("Do you want to continue")
			if err != nil {
				return err
			}
			if !approved {
				fmt.Println("Process stopped by the user. Exiting...")
				return nil
			}
		}

		fmt.Println(cli.Center(" Triggering Snapshots ", 80, '-'))
		summary := firmware.RunSnapshots(cmd.Context(), apiClient, candidates, cli.NewProgress())

		fmt.Printf("\n%s, %s\n",
			cli.Green(fmt.Sprintf("%d succeeded", summary.Success)),
			cli.Red(fmt.Sprintf("%d failed", summary.Failure)))
		for _, result := range summary.Results {
			if result.Err != nil {
				fmt.Printf("  %s: %v\n", result.Candidate.DeviceID, result.Err)
			}
		}
		return nil
	},
}

var gatewaysComplianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Report firmware backup compliance to a CSV",
	Long: `Walks all gateway devices of an org or site and writes a backup
compliance view: running version, recovery snapshot version, backup
version, and whether each module's backup matches its running firmware.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := resolveScope(cmd.Context(), gwOrgID, gwSiteID)
		if err != nil {
			return err
		}

		gateways, err := collectGateways(cmd.Context(), scope)
		if err != nil {
			return err
		}
		rows := firmware.BuildComplianceRows(gateways)

		outFile := resolveReportPath(gwComplianceOutFile)
		comment := fmt.Sprintf("Gateways Firmware Backup for %s %s", scope.Kind, scope.ID)
		if err := firmware.SaveReport(outFile, comment, rows); err != nil {
			return err
		}

		compliant := 0
		for _, row := range rows {
			if row.Compliance {
				compliant++
			}
		}
		fmt.Printf("%d modules written to %s (%d compliant, %d not)\n",
			len(rows), outFile, compliant, len(rows)-compliant)
		return nil
	},
}

// collectGateways drains the stats pager for a scope, with a banner the
// way the interactive reports always printed it.
func collectGateways(ctx context.Context, scope Scope) ([]mist.GatewayStat, error) {
	fmt.Println(cli.Center(" Retrieving Gateways ", 80, '-'))
	var pager *mist.GatewayPager
	if scope.Kind == "org" {
		pager = apiClient.ListOrgGatewayStats(scope.ID)
	} else {
		pager = apiClient.ListSiteGatewayStats(scope.ID)
	}
	gateways, err := pager.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieving gateways: %w", err)
	}
	return gateways, nil
}

// collectModuleRows streams the stats pager page by page, flattening as
// it goes so large fleets never sit in memory twice.
func collectModuleRows(ctx context.Context, scope Scope) ([]firmware.ModuleRow, error) {
	fmt.Println(cli.Center(" Retrieving Gateways ", 80, '-'))
	var pager *mist.GatewayPager
	if scope.Kind == "org" {
		pager = apiClient.ListOrgGatewayStats(scope.ID)
	} else {
		pager = apiClient.ListSiteGatewayStats(scope.ID)
	}

	var rows []firmware.ModuleRow
	total := 0
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("retrieving gateways: %w", err)
		}
		if page == nil {
			break
		}
		total += len(page)
		rows = append(rows, firmware.BuildRows(page)...)
	}
	fmt.Printf("%d gateways retrieved.\n", total)
	return rows, nil
}

func printCandidates(candidates []firmware.Candidate) {
	fmt.Println(cli.Center("", 80, '-'))
	fmt.Println("List of gateways to process:")
	fmt.Println()
	table := cli.NewTable("NAME", "MODEL", "MAC", "SITE ID", "DEVICE ID")
	for _, cand := range candidates {
		table.Row(cand.Name, cand.Model, cand.Mac, cand.SiteID, cand.DeviceID)
	}
	table.Flush()
	fmt.Println()
}

func init() {
	reportFlags := gatewaysReportCmd.Flags()
	reportFlags.StringVarP(&gwOrgID, "org-id", "o", "", "Org to report on")
	reportFlags.StringVarP(&gwSiteID, "site-id", "s", "", "Site to report on")
	reportFlags.StringVarP(&gwReportOutFile, "out-file", "f", "./report_gateway_firmware.csv", "Report file path")
	reportFlags.BoolVarP(&gwAppendDT, "datetime", "d", false, "Append the current ISO datetime to the report name")
	reportFlags.BoolVarP(&gwAppendTS, "timestamp", "t", false, "Append the current unix timestamp to the report name")
	gatewaysReportCmd.MarkFlagsMutuallyExclusive("org-id", "site-id")
	gatewaysReportCmd.MarkFlagsMutuallyExclusive("datetime", "timestamp")

	snapshotFlags := gatewaysSnapshotCmd.Flags()
	snapshotFlags.StringVarP(&gwSiteID, "site-id", "s", "", "Only process devices of this site")
	snapshotFlags.StringVarP(&gwInFile, "in-file", "f", "./report_gateway_firmware.csv", "Report produced by 'gateways report'")
	snapshotFlags.BoolVar(&gwAutoApprove, "auto-approve", false, "Skip the interactive confirmation")

	complianceFlags := gatewaysComplianceCmd.Flags()
	complianceFlags.StringVarP(&gwOrgID, "org-id", "o", "", "Org to report on")
	complianceFlags.StringVarP(&gwSiteID, "site-id", "s", "", "Site to report on")
	complianceFlags.StringVarP(&gwComplianceOutFile, "out-file", "f", "./report_gateway_fw_backup.csv", "Report file path")
	gatewaysComplianceCmd.MarkFlagsMutuallyExclusive("org-id", "site-id")

	gatewaysCmd.AddCommand(gatewaysReportCmd, gatewaysSnapshotCmd, gatewaysComplianceCmd)
}
