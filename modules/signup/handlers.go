package signup

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/wyrdhq/authcore/pkg/auth"
	"github.com/wyrdhq/authcore/pkg/logger"
	"github.com/wyrdhq/authcore/pkg/sanitizer"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type handler struct {
	svc    Services
	log    *slog.Logger
	health http.HandlerFunc
}

func newHandler(svc Services) *handler {
	return &handler{
		svc: svc,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	SignupID string `json:"signup_id"`
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = sanitizer.CollapseWhitespace(req.Name)
	req.Username = sanitizer.CollapseWhitespace(req.Username)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if fieldErrs := validateSignup(req); len(fieldErrs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, fieldErrs)
		return
	}

	account, err := h.svc.Credentials.Signup(r.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		fieldErrs := map[string]string{}
		if errors.Is(err, auth.ErrUsernameTaken) {
			fieldErrs["username"] = auth.ErrUsernameTaken.Error()
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			fieldErrs["email"] = auth.ErrEmailTaken.Error()
		}
		if len(fieldErrs) > 0 {
			writeFieldErrors(w, http.StatusBadRequest, fieldErrs)
			return
		}

		h.log.ErrorContext(r.Context(), "signup failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.svc.Verification.Issue(r.Context(), account); err != nil {
		// The account exists; the client can retry delivery through
		// /resend-otp with the returned id.
		h.log.ErrorContext(r.Context(), "verification issue failed",
			logger.AccountID(account.ID.String()), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":     "failed to send verification code, please resend",
			"signup_id": account.ID.String(),
		})
		return
	}

	writeJSON(w, http.StatusOK, signupResponse{SignupID: account.ID.String()})
}

func validateSignup(req signupRequest) map[string]string {
	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.Username == "" {
		errs["username"] = "username is required"
	}
	if req.Email == "" {
		errs["email"] = "email is required"
	} else if !emailRegex.MatchString(req.Email) {
		errs["email"] = "invalid email address"
	}
	if len(req.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	return errs
}

type loginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := auth.Identifier{
		Username: sanitizer.CollapseWhitespace(req.Username),
		Email:    sanitizer.NormalizeEmail(req.Email),
	}

	err := h.svc.Credentials.Login(r.Context(), id, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, auth.ErrBadIdentifier):
		writeError(w, http.StatusBadRequest, auth.ErrBadIdentifier.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	default:
		h.log.ErrorContext(r.Context(), "login failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type otpRequest struct {
	EnteredCode string `json:"entered_code"`
	SignupID    string `json:"signup_id"`
}

func (h *handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accountID, err := uuid.Parse(req.SignupID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signup_id")
		return
	}

	err = h.svc.Verification.Verify(r.Context(), accountID, req.EnteredCode)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
	case errors.Is(err, auth.ErrOTPMismatch):
		writeError(w, http.StatusUnauthorized, auth.ErrOTPMismatch.Error())
	case errors.Is(err, auth.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, "code expired, please resend")
	default:
		h.log.ErrorContext(r.Context(), "otp verification failed",
			logger.AccountID(req.SignupID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type resendRequest struct {
	SignupID string `json:"signup_id"`
}

func (h *handler) resendOTP(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accountID, err := uuid.Parse(req.SignupID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid signup_id")
		return
	}

	if err := h.svc.Verification.Resend(r.Context(), accountID); err != nil {
		h.log.ErrorContext(r.Context(), "otp resend failed",
			logger.AccountID(req.SignupID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to resend verification code")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
