package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"hrcc/internal/admin/adapters"
	adminhandler "hrcc/internal/admin/handler"
	adminservice "hrcc/internal/admin/service"
	adminstore "hrcc/internal/admin/store"
	applicanthandler "hrcc/internal/applicant/handler"
	applicantmodels "hrcc/internal/applicant/models"
	applicantservice "hrcc/internal/applicant/service"
	applicantstore "hrcc/internal/applicant/store"
	"hrcc/internal/auth/revocation"
	httpapi "hrcc/internal/http"
	"hrcc/internal/jwttoken"
	"hrcc/internal/mailer"
	"hrcc/internal/platform/config"
	"hrcc/internal/platform/httpserver"
	"hrcc/internal/platform/logger"
	"hrcc/internal/platform/metrics"
	"hrcc/internal/platform/mongo"
	"hrcc/internal/platform/redis"
	"hrcc/internal/ratelimit"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/audit/publisher"
	auditmongo "hrcc/pkg/platform/audit/store/mongo"
)

// main wires configuration, stores and services into the router and runs the
// server until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ValidateMongo(); err != nil {
		return err
	}
	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, using the development secret")
	}

	mongoClient, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("disconnect mongo", "error", err)
		}
	}()
	db := mongoClient.Database()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info("mongo connected", "database", cfg.Mongo.Database)

	health := map[string]httpapi.HealthCheck{"mongo": mongoClient.Health}

	var (
		trl        revocation.TokenRevocationList
		limitStore ratelimit.Store
	)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		trl = revocation.NewRedisTRL(redisClient.Client)
		limitStore = ratelimit.NewRedisStore(redisClient.Client)
		health["redis"] = redisClient.Health
		log.Info("redis connected; revocation and rate limits are shared")
	} else {
		trl = revocation.NewInMemoryTRL()
		limitStore = ratelimit.NewInMemoryStore()
		log.Info("REDIS_URL not set; revocation and rate limits are process-local")
	}

	auditStore := auditmongo.New(db)
	if err := auditStore.EnsureIndexes(ctx); err != nil {
		return err
	}
	auditor := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(256), publisher.WithLogger(log))
	defer auditor.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	jwtService := jwttoken.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	admins := adminservice.New(adminstore.NewMongoAdminStore(db), jwtService, trl,
		adminservice.WithLogger(log),
		adminservice.WithMetrics(m),
		adminservice.WithSeedAdmins(cfg.Seed.Admins),
		adminservice.WithAuditor(auditor),
	)
	created, err := admins.SeedAdmins(ctx)
	if err != nil {
		log.Error("seed admins", "error", err)
	} else if created > 0 {
		log.Info("seed admins created", "count", created)
	}

	vocab, err := applicantmodels.NewVocabulary(cfg.Applicant.HoldStatus)
	if err != nil {
		return err
	}
	opts := []applicantservice.Option{
		applicantservice.WithVocabulary(vocab),
		applicantservice.WithLogger(log),
		applicantservice.WithMetrics(m),
		applicantservice.WithTracer(otel.Tracer("hrcc/applicant")),
		applicantservice.WithAuditor(auditor),
	}
	sender, err := mailer.New(cfg.Email, log)
	if err != nil {
		log.Error("email delivery disabled", "provider", cfg.Email.Provider, "error", err)
	} else {
		opts = append(opts, applicantservice.WithMailer(sender))
	}

	applicants := applicantstore.NewMongoApplicantStore(db)
	dashboards := make(map[domain.Domain]*applicanthandler.DashboardHandler, len(domain.Domains))
	for _, d := range domain.Domains {
		svc, err := applicantservice.NewDashboard(d, applicants, opts...)
		if err != nil {
			return err
		}
		dashboards[d] = applicanthandler.NewDashboardHandler(svc, log)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        m,
		Gatherer:       registry,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Validator:      jwttoken.NewJWTServiceAdapter(jwtService),
		Revocation:     revocation.NewChecker(trl),
		Admins:         adapters.NewPrincipalResolver(admins),
		LoginLimiter: ratelimit.New(limitStore, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, log,
			ratelimit.WithRecorder(m)),
		Admin:      adminhandler.New(admins, log),
		Register:   applicanthandler.NewRegisterHandler(applicantservice.NewRegistrar(applicants, log, m, applicantservice.WithRegistrationAuditor(auditor)), cfg.Applicant.InstitutionDomain, log),
		Dashboards: dashboards,
		Health:     health,
	})

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting hrcc", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
