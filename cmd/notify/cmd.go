package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	applicantmodels "hrcc/internal/applicant/models"
	applicantservice "hrcc/internal/applicant/service"
	applicantstore "hrcc/internal/applicant/store"
	"hrcc/internal/mailer"
	"hrcc/internal/platform/config"
	"hrcc/internal/platform/logger"
	"hrcc/internal/platform/mongo"
	"hrcc/pkg/domain"
)

type shortlistedOptions struct {
	domain      string
	subject     string
	dryRun      bool
	concurrency int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notify",
		Short:         "Send recruitment emails from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newShortlistedCmd())
	return root
}

func newShortlistedCmd() *cobra.Command {
	opts := shortlistedOptions{}
	cmd := &cobra.Command{
		Use:   "shortlisted",
		Short: "Email every shortlisted applicant of a domain",
		Long: `Loads the shortlisted applicants of one domain and sends each of them the
shortlist email individually. Use --dry-run to list recipients without
sending anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runShortlisted(ctx, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.domain, "domain", "", "recruitment domain (technical, creative, corporate)")
	cmd.Flags().StringVar(&opts.subject, "subject", applicantservice.DefaultShortlistSubject, "email subject")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list recipients without sending")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "maximum concurrent sends")
	_ = cmd.MarkFlagRequired("domain")
	return cmd
}

func runShortlisted(ctx context.Context, out io.Writer, opts shortlistedOptions) error {
	d, err := domain.ParseDomain(opts.domain)
	if err != nil {
		return fmt.Errorf("--domain: %w", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.ValidateMongo(); err != nil {
		return err
	}
	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)

	client, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	vocab, err := applicantmodels.NewVocabulary(cfg.Applicant.HoldStatus)
	if err != nil {
		return err
	}
	svcOpts := []applicantservice.Option{
		applicantservice.WithVocabulary(vocab),
		applicantservice.WithLogger(log),
		applicantservice.WithEmailConcurrency(opts.concurrency),
	}
	if !opts.dryRun {
		sender, err := mailer.New(cfg.Email, log)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, applicantservice.WithMailer(sender))
	}

	dashboard, err := applicantservice.NewDashboard(d, applicantstore.NewMongoApplicantStore(client.Database()), svcOpts...)
	if err != nil {
		return err
	}
	report, err := dashboard.NotifyShortlisted(ctx, opts.subject, opts.dryRun)
	if err != nil {
		return err
	}
	renderReport(out, d, report)
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d emails failed", report.Failed, len(report.Recipients))
	}
	return nil
}
