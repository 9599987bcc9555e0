package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicantservice "hrcc/internal/applicant/service"
	"hrcc/internal/mailer"
	"hrcc/pkg/domain"
)

func init() {
	color.NoColor = true
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, domain.DomainCreative, &applicantservice.NotifyReport{
		Subject: "Shortlisted",
		Sent:    1,
		Failed:  1,
		Recipients: []mailer.Result{
			{Name: "Ada", Email: "ada@gmail.com", Sent: true},
			{Name: "Lin", Email: "lin@gmail.com", Error: "relay refused"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Creative shortlist")
	assert.Contains(t, out, "ada@gmail.com")
	assert.Contains(t, out, "failed: relay refused")
	assert.Contains(t, out, "sent 1, failed 1")
}

func TestRenderReportDryRun(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, domain.DomainTechnical, &applicantservice.NotifyReport{
		Subject:    "Shortlisted",
		DryRun:     true,
		Recipients: []mailer.Result{{Name: "Ada", Email: "ada@gmail.com"}},
	})
	assert.Contains(t, buf.String(), "pending")
	assert.Contains(t, buf.String(), "dry run: 1 recipients")
}

func TestShortlistedRequiresDomain(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"shortlisted"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain")
}

func TestShortlistedRejectsUnknownDomain(t *testing.T) {
	err := runShortlisted(t.Context(), &bytes.Buffer{}, shortlistedOptions{domain: "marketing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--domain")
}
