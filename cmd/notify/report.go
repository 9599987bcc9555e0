package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	applicantservice "hrcc/internal/applicant/service"
	"hrcc/pkg/domain"
)

func renderReport(out io.Writer, d domain.Domain, report *applicantservice.NotifyReport) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(out, "\n%s shortlist: %q\n", d.Label(), report.Subject)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Name", "Email", "Result"})
	for _, r := range report.Recipients {
		table.Append([]string{r.Name, r.Email, outcome(report.DryRun, r.Sent, r.Error)})
	}
	table.Render()

	switch {
	case report.DryRun:
		color.New(color.FgYellow).Fprintf(out, "dry run: %d recipients, nothing sent\n", len(report.Recipients))
	case report.Failed > 0:
		color.New(color.FgRed).Fprintf(out, "sent %d, failed %d\n", report.Sent, report.Failed)
	default:
		color.New(color.FgGreen).Fprintf(out, "sent %d\n", report.Sent)
	}
}

func outcome(dryRun, sent bool, errMsg string) string {
	switch {
	case dryRun:
		return "pending"
	case sent:
		return "sent"
	default:
		return fmt.Sprintf("failed: %s", errMsg)
	}
}
