package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/admin/models"
	"hrcc/internal/platform/config"
	"hrcc/internal/platform/metrics"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/platform/secrets"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AdminStore,TokenIssuer,TokenRevoker,Auditor

type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Admin, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error
}

type TokenIssuer interface {
	IssueAdminToken(adminID bson.ObjectID, role domain.Role, d domain.Domain) (string, time.Time, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service authenticates admins and materializes the seed accounts.
type Service struct {
	admins  AdminStore
	tokens  TokenIssuer
	revoker TokenRevoker
	seed    []config.SeedAdmin
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor Auditor
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithSeedAdmins sets the identities accepted by the seed login path.
func WithSeedAdmins(seed []config.SeedAdmin) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// New constructs a Service.
func New(admins AdminStore, tokens TokenIssuer, revoker TokenRevoker, opts ...Option) *Service {
	s := &Service{admins: admins, tokens: tokens, revoker: revoker, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedAdmins creates every configured seed identity that has no matching
// username or email yet. A concurrent process creating the same admin is
// treated as success.
func (s *Service) SeedAdmins(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range s.seed {
		_, err := s.admins.FindByUsernameOrEmail(ctx, seed.Username, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return created, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up seed admin")
		}

		admin, err := s.createFromSeed(ctx, seed)
		if err != nil {
			return created, err
		}
		if admin != nil {
			created++
			s.logger.InfoContext(ctx, "seed admin created",
				"username", admin.Username,
				"role", admin.Role,
			)
		}
	}
	return created, nil
}

// createFromSeed returns nil, nil when another writer won the race.
func (s *Service) createFromSeed(ctx context.Context, seed config.SeedAdmin) (*models.Admin, error) {
	role, err := domain.ParseRole(seed.Role)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid seed admin role for "+seed.Username)
	}
	var d domain.Domain
	if seed.Domain != "" {
		if d, err = domain.ParseDomain(seed.Domain); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid seed admin domain for "+seed.Username)
		}
	}
	hash, err := secrets.Hash(seed.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash seed admin password")
	}
	admin, err := models.NewAdmin(bson.NewObjectID(), seed.Username, seed.Email, hash, role, d, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid seed admin "+seed.Username)
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create seed admin")
	}
	return admin, nil
}

// Login authenticates by username or email. Seed identities are checked
// first against their configured password; everyone else is verified against
// the stored bcrypt hash.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Username and password are required")
	}

	admin, err := s.seedLogin(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		admin, err = s.storedLogin(ctx, identifier, password)
		if err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record login")
	}
	admin.LastLogin = &now

	token, expiresAt, err := s.tokens.IssueAdminToken(admin.ID, admin.Role, admin.Domain)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.incLogin("success")
	s.logger.InfoContext(ctx, "admin logged in",
		"admin_id", admin.ID.Hex(),
		"role", admin.Role,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.Event{Action: audit.ActionAdminLogin, ActorID: admin.ID.Hex(), Domain: admin.Domain.String()})
	return &models.LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// seedLogin returns nil, nil when the identifier or password does not match
// a seed identity.
func (s *Service) seedLogin(ctx context.Context, identifier, password string) (*models.Admin, error) {
	var match *config.SeedAdmin
	for i := range s.seed {
		seed := &s.seed[i]
		if seed.Username == identifier || strings.EqualFold(seed.Email, identifier) {
			match = seed
			break
		}
	}
	if match == nil || !secrets.Equal(password, match.Password) {
		return nil, nil
	}

	admin, err := s.admins.FindByUsernameOrEmail(ctx, match.Username, match.Email)
	if errors.Is(err, sentinel.ErrNotFound) {
		created, cerr := s.createFromSeed(ctx, *match)
		if cerr != nil {
			return nil, cerr
		}
		if created != nil {
			s.logger.InfoContext(ctx, "seed admin created on login", "username", created.Username)
			return created, nil
		}
		admin, err = s.admins.FindByUsernameOrEmail(ctx, match.Username, match.Email)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin")
	}
	if !admin.IsActive {
		s.incLogin("inactive")
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}
	return admin, nil
}

func (s *Service) storedLogin(ctx context.Context, identifier, password string) (*models.Admin, error) {
	admin, err := s.admins.FindByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incLogin("invalid_credentials")
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin")
	}
	if !admin.IsActive {
		s.incLogin("inactive")
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}
	if err := secrets.Verify(password, admin.PasswordHash); err != nil {
		if errors.Is(err, secrets.ErrMismatch) {
			s.incLogin("invalid_credentials")
			s.logger.WarnContext(ctx, "admin login failed",
				"admin_id", admin.ID.Hex(),
				"request_id", requestcontext.RequestID(ctx),
			)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	return admin, nil
}

// Profile returns the authenticated admin.
func (s *Service) Profile(ctx context.Context) (*models.Admin, error) {
	id := requestcontext.AdminID(ctx)
	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Admin not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin")
	}
	return admin, nil
}

// Logout revokes the current token until it would have expired.
func (s *Service) Logout(ctx context.Context) (time.Time, error) {
	now := requestcontext.Now(ctx)
	jti := requestcontext.TokenID(ctx)
	if jti == "" {
		return time.Time{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	ttl := requestcontext.TokenExpiry(ctx).Sub(now)
	if ttl > 0 {
		if err := s.revoker.RevokeToken(ctx, jti, ttl); err != nil {
			return time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
		}
	}
	s.logger.InfoContext(ctx, "admin logged out",
		"admin_id", requestcontext.AdminID(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.Event{Action: audit.ActionAdminLogout})
	return now, nil
}

// ResolveAdmin loads the admin referenced by a token. It returns
// sentinel.ErrNotFound unchanged so the middleware can answer 401.
func (s *Service) ResolveAdmin(ctx context.Context, id bson.ObjectID) (*models.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

// audit records the event; a failure is logged and never fails the caller.
func (s *Service) audit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) incLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.IncLogin(outcome)
	}
}
