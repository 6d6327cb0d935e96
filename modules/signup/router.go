package signup

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wyrdhq/authcore/pkg/auth"
)

// Services bundles the domain services the signup module exposes over
// HTTP.
type Services struct {
	Credentials  *auth.CredentialService
	Verification *auth.VerificationService
}

// RouterOption customizes the signup router.
type RouterOption func(*handler)

// WithLogger supplies a logger for request-scoped error reporting.
func WithLogger(log *slog.Logger) RouterOption {
	return func(h *handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithHealthcheck mounts GET /health answering from the given probes.
func WithHealthcheck(probe http.HandlerFunc) RouterOption {
	return func(h *handler) { h.health = probe }
}

// Router builds the HTTP surface of the signup flow:
//
//	POST /signup      — create an account, issue a verification code
//	POST /login       — check credentials
//	POST /otp         — verify a submitted code
//	POST /resend-otp  — rotate the pending verification code
func Router(svc Services, opts ...RouterOption) chi.Router {
	h := newHandler(svc)
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/otp", h.verifyOTP)
	r.Post("/resend-otp", h.resendOTP)
	if h.health != nil {
		r.Get("/health", h.health)
	}

	return r
}
