package ratelimit

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hrcc/pkg/platform/httputil"
	"hrcc/pkg/requestcontext"
)

// maxPeekBytes caps how much of a login body is buffered to find the identifier.
const maxPeekBytes = 4 << 10

// RejectionRecorder counts rejected requests.
type RejectionRecorder interface {
	IncRateLimited(route string)
}

type Middleware struct {
	store    Store
	limit    int
	window   time.Duration
	logger   *slog.Logger
	recorder RejectionRecorder
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the limiter into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithRecorder(r RejectionRecorder) Option {
	return func(m *Middleware) {
		m.recorder = r
	}
}

func New(store Store, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled || m.limit <= 0 {
		logger.Info("login rate limiting disabled")
	}
	return m
}

// LoginLimit throttles by client address and by the submitted identifier so
// that rotating addresses does not help guess one account.
func (m *Middleware) LoginLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled || m.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		keys := []string{"login:ip:" + ip}
		if ident := peekIdentifier(r); ident != "" {
			keys = append(keys, "login:id:"+strings.ToLower(ident))
		}

		for _, key := range keys {
			result, err := m.store.Allow(ctx, key, m.limit, m.window)
			if err != nil {
				// Fail open: a limiter outage must not lock admins out.
				m.logger.ErrorContext(ctx, "failed to check login rate limit",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				break
			}
			addHeaders(w, result)
			if !result.Allowed {
				m.logger.WarnContext(ctx, "login rate limit exceeded",
					"client_ip", ip,
					"request_id", requestcontext.RequestID(ctx),
				)
				if m.recorder != nil {
					m.recorder.IncRateLimited("login")
				}
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(time.Now())))
				httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
					Error:            "rate_limited",
					ErrorDescription: "Too many login attempts. Please try again later.",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func peekIdentifier(r *http.Request) string {
	if r.Body == nil || r.ContentLength == 0 {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	rest := r.Body
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), rest), rest}
	if err != nil {
		return ""
	}
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if v := strings.TrimSpace(payload.Username); v != "" {
		return v
	}
	return strings.TrimSpace(payload.Email)
}

func addHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
