package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADDR", "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("APPLICANT_HOLD_STATUS", "")
	t.Setenv("SEED_ADMINS_FILE", "")
	t.Setenv("SEED_SUPERADMIN_PASSWORD", "s3cret")
	t.Setenv("SEED_CREATIVE_LEAD_PASSWORD", "")
	t.Setenv("SEED_CORPORATE_LEAD_PASSWORD", "")
	t.Setenv("SEED_TECHNICAL_LEAD_PASSWORD", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":5100", cfg.Server.Addr)
	assert.Equal(t, "hrcc", cfg.Mongo.Database)
	assert.Equal(t, "omitted", cfg.Applicant.HoldStatus)
	assert.Equal(t, "srmist.edu.in", cfg.Applicant.InstitutionDomain)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	require.NoError(t, cfg.ValidateMongo())

	require.Len(t, cfg.Seed.Admins, 1, "identities without a password are skipped")
	assert.Equal(t, "superadmin", cfg.Seed.Admins[0].Username)
	assert.Equal(t, "s3cret", cfg.Seed.Admins[0].Password)
}

func TestFromEnvRejectsUnknownHoldStatus(t *testing.T) {
	t.Setenv("APPLICANT_HOLD_STATUS", "paused")
	t.Setenv("SEED_ADMINS_FILE", "")
	_, err := FromEnv()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateMongo(t *testing.T) {
	cases := map[string]bool{
		"":                                  false,
		"postgres://localhost":              false,
		"mongodb://localhost:27017":         true,
		"mongodb+srv://cluster.example.net": true,
	}
	for uri, ok := range cases {
		err := Config{Mongo: MongoConfig{URI: uri}}.ValidateMongo()
		if ok {
			assert.NoError(t, err, uri)
		} else {
			assert.ErrorIs(t, err, ErrInvalidConfig, uri)
		}
	}
}

func TestSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admins.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
admins:
  - username: superadmin
    email: SuperAdmin@hrcc.com
    role: super_admin
    password: inline-pass
  - username: tech
    email: tech@hrcc.com
    role: technical_lead
    domain: Technical
    password_env: TECH_PASS
  - username: nopass
    email: nopass@hrcc.com
    role: creative_lead
    domain: creative
`), 0o600))
	t.Setenv("SEED_ADMINS_FILE", path)
	t.Setenv("TECH_PASS", "from-env")

	seed, err := seedFromEnv()
	require.NoError(t, err)
	require.Len(t, seed.Admins, 2)
	assert.Equal(t, "superadmin@hrcc.com", seed.Admins[0].Email)
	assert.Equal(t, "inline-pass", seed.Admins[0].Password)
	assert.Equal(t, "technical", seed.Admins[1].Domain)
	assert.Equal(t, "from-env", seed.Admins[1].Password)
}

func TestSeedFileRequiresIdentity(t *testing.T) {
	_, err := parseSeedFile([]byte("admins:\n  - username: x\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEmailProviderSelection(t *testing.T) {
	t.Setenv("USE_MAILTRAP", "")
	t.Setenv("USE_GMAIL", "true")
	t.Setenv("GMAIL_USER", "recruit@gmail.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-pass")

	cfg := emailFromEnv()
	assert.Equal(t, ProviderGmail, cfg.Provider)
	assert.Equal(t, "smtp.gmail.com", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "recruit@gmail.com", cfg.From)
	require.NoError(t, cfg.Validate())

	t.Setenv("USE_GMAIL", "")
	t.Setenv("BREVO_SMTP_KEY", "")
	t.Setenv("BREVO_API_KEY", "api-key")
	t.Setenv("BREVO_SMTP_PASSWORD", "")
	cfg = emailFromEnv()
	assert.Equal(t, ProviderBrevo, cfg.Provider)
	assert.Equal(t, "api-key", cfg.Username)
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
