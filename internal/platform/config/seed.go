package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedAdmin is an admin identity materialized at startup. Password is the
// resolved plaintext; identities without one are dropped.
type SeedAdmin struct {
	Username string
	Email    string
	Role     string
	Domain   string
	Password string
}

// SeedConfig lists the seed identities.
type SeedConfig struct {
	Admins []SeedAdmin
}

type seedFileEntry struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
	Domain      string `yaml:"domain"`
	Password    string `yaml:"password"`
	PasswordEnv string `yaml:"password_env"`
}

type seedFile struct {
	Admins []seedFileEntry `yaml:"admins"`
}

var defaultSeedAdmins = []seedFileEntry{
	{Username: "superadmin", Email: "superadmin@hrcc.com", Role: "super_admin", PasswordEnv: "SEED_SUPERADMIN_PASSWORD"},
	{Username: "creative_lead", Email: "creative@hrcc.com", Role: "creative_lead", Domain: "creative", PasswordEnv: "SEED_CREATIVE_LEAD_PASSWORD"},
	{Username: "corporate_lead", Email: "corporate@hrcc.com", Role: "corporate_lead", Domain: "corporate", PasswordEnv: "SEED_CORPORATE_LEAD_PASSWORD"},
	{Username: "technical_lead", Email: "technical@hrcc.com", Role: "technical_lead", Domain: "technical", PasswordEnv: "SEED_TECHNICAL_LEAD_PASSWORD"},
}

func seedFromEnv() (SeedConfig, error) {
	entries := defaultSeedAdmins
	if path := strings.TrimSpace(os.Getenv("SEED_ADMINS_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return SeedConfig{}, fmt.Errorf("read seed admins file: %w", err)
		}
		parsed, err := parseSeedFile(raw)
		if err != nil {
			return SeedConfig{}, err
		}
		entries = parsed
	}
	return SeedConfig{Admins: resolveSeed(entries, os.Getenv)}, nil
}

// parseSeedFile decodes a YAML seed file of the form
//
//	admins:
//	  - username: superadmin
//	    email: superadmin@hrcc.com
//	    role: super_admin
//	    password_env: SEED_SUPERADMIN_PASSWORD
func parseSeedFile(raw []byte) ([]seedFileEntry, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse seed admins file: %v", ErrInvalidConfig, err)
	}
	for i, e := range f.Admins {
		if strings.TrimSpace(e.Username) == "" || strings.TrimSpace(e.Email) == "" || strings.TrimSpace(e.Role) == "" {
			return nil, fmt.Errorf("%w: seed admin #%d needs username, email and role", ErrInvalidConfig, i+1)
		}
	}
	return f.Admins, nil
}

func resolveSeed(entries []seedFileEntry, lookup func(string) string) []SeedAdmin {
	out := make([]SeedAdmin, 0, len(entries))
	for _, e := range entries {
		password := e.Password
		if password == "" && e.PasswordEnv != "" {
			password = lookup(e.PasswordEnv)
		}
		if strings.TrimSpace(password) == "" {
			continue
		}
		out = append(out, SeedAdmin{
			Username: strings.TrimSpace(e.Username),
			Email:    strings.ToLower(strings.TrimSpace(e.Email)),
			Role:     strings.TrimSpace(e.Role),
			Domain:   strings.ToLower(strings.TrimSpace(e.Domain)),
			Password: password,
		})
	}
	return out
}
