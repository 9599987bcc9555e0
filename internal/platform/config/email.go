package config

import (
	"fmt"
	"os"
	"strings"
)

// EmailProvider selects the SMTP relay.
type EmailProvider string

const (
	ProviderBrevo    EmailProvider = "brevo"
	ProviderMailtrap EmailProvider = "mailtrap"
	ProviderGmail    EmailProvider = "gmail"
)

// EmailConfig describes outbound mail. Disabled routes mail to the log.
type EmailConfig struct {
	Provider EmailProvider
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Disabled bool
}

func emailFromEnv() EmailConfig {
	cfg := EmailConfig{
		Port:     587,
		From:     getEnv("BREVO_FROM_EMAIL", "no-reply@yourdomain.com"),
		FromName: getEnv("BREVO_FROM_NAME", "HRCC Recruitments"),
		Disabled: getBool("EMAIL_DISABLED"),
	}

	switch {
	case getBool("USE_MAILTRAP"):
		cfg.Provider = ProviderMailtrap
		cfg.Host = "live.smtp.mailtrap.io"
		cfg.Username = strings.TrimSpace(os.Getenv("MAILTRAP_USER"))
		cfg.Password = strings.TrimSpace(os.Getenv("MAILTRAP_PASS"))
	case getBool("USE_GMAIL"):
		cfg.Provider = ProviderGmail
		cfg.Host = "smtp.gmail.com"
		cfg.Username = strings.TrimSpace(os.Getenv("GMAIL_USER"))
		cfg.Password = strings.TrimSpace(os.Getenv("GMAIL_APP_PASSWORD"))
		// Gmail rewrites the sender to the authenticated account.
		if cfg.Username != "" {
			cfg.From = cfg.Username
		}
	default:
		cfg.Provider = ProviderBrevo
		cfg.Host = "smtp-relay.brevo.com"
		cfg.Username = getEnv("BREVO_SMTP_KEY", strings.TrimSpace(os.Getenv("BREVO_API_KEY")))
		cfg.Password = strings.TrimSpace(os.Getenv("BREVO_SMTP_PASSWORD"))
	}
	return cfg
}

// Validate reports missing credentials for the selected provider.
func (c EmailConfig) Validate() error {
	if c.Disabled {
		return nil
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: %s SMTP credentials are not set", ErrInvalidConfig, c.Provider)
	}
	return nil
}
