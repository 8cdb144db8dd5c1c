package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/config"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/usecase"
	"github.com/vasapolrittideah/user-profile-api/shared/metrics"
	"github.com/vasapolrittideah/user-profile-api/shared/utilities"
	"github.com/vasapolrittideah/user-profile-api/shared/validator"
)

const welcomeMessage = "Welcome to the user profile API"

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ProfileHTTPHandler serves the profile API over HTTP.
type ProfileHTTPHandler struct {
	profileUsecase usecase.ProfileUsecase
	authUsecase    usecase.AuthUsecase
	validator      *validator.Validator
	sessionCfg     config.SessionConfig
	health         []HealthChecker
	logger         *zerolog.Logger
}

func NewProfileHTTPHandler(
	profileUsecase usecase.ProfileUsecase,
	authUsecase usecase.AuthUsecase,
	v *validator.Validator,
	sessionCfg config.SessionConfig,
	logger *zerolog.Logger,
	health ...HealthChecker,
) *ProfileHTTPHandler {
	return &ProfileHTTPHandler{
		profileUsecase: profileUsecase,
		authUsecase:    authUsecase,
		validator:      v,
		sessionCfg:     sessionCfg,
		health:         health,
		logger:         logger,
	}
}

// Routes builds the router with logging, recovery and metrics middleware.
func (h *ProfileHTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(*h.logger))
	r.Use(hlog.RequestIDHandler("request_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(logRequest))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)

	r.Get("/", h.Welcome)
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Get("/{id}", h.GetProfile)
	r.Put("/{id}", h.UpdateProfile)
	r.Delete("/{id}", h.DeleteProfile)

	return r
}

func (h *ProfileHTTPHandler) Welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeMessage))
}

func (h *ProfileHTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	for _, checker := range h.health {
		if err := checker.Health(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
			h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func logRequest(r *http.Request, status, size int, duration time.Duration) {
	event := hlog.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}

	event.
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request handled")
}

// currentSession resolves the session named by the request's cookie. A missing,
// forged or expired cookie yields a nil session and no error.
func (h *ProfileHTTPHandler) currentSession(r *http.Request) (*model.Session, error) {
	token := h.sessionToken(r)
	if token == "" {
		return nil, nil
	}

	session, err := h.authUsecase.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}

	return session, nil
}

func (h *ProfileHTTPHandler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.sessionCfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *ProfileHTTPHandler) setSessionCookie(w http.ResponseWriter, token *usecase.SessionToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		MaxAge:   int(time.Until(token.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *ProfileHTTPHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *ProfileHTTPHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := utilities.WriteJSON(w, status, v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write response")
	}
}

func (h *ProfileHTTPHandler) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, utilities.MessageResponse{Message: message})
}

func (h *ProfileHTTPHandler) writeError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	details map[string]string,
) {
	if err := utilities.WriteError(w, status, message, details); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write response")
	}
}

// decodeAndValidate reads the JSON body into dst and validates it, writing a 400
// response and returning false on failure.
func (h *ProfileHTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utilities.DecodeJSON(w, r, dst); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("failed to decode request body")

		message := utilities.ErrMalformedBody.Error()
		switch {
		case errors.Is(err, utilities.ErrEmptyBody):
			message = utilities.ErrEmptyBody.Error()
		case errors.Is(err, utilities.ErrBodyTooLarge):
			message = utilities.ErrBodyTooLarge.Error()
		}

		h.writeError(w, r, http.StatusBadRequest, message, nil)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var fieldErrs validator.FieldErrors
		if errors.As(err, &fieldErrs) {
			h.writeError(w, r, http.StatusBadRequest, "validation failed", fieldErrs)
			return false
		}

		hlog.FromRequest(r).Error().Err(err).Msg("failed to validate request")
		h.writeError(w, r, http.StatusInternalServerError, "something went wrong", nil)
		return false
	}

	return true
}

// writeUsecaseError maps a usecase error to a response. Unexpected errors are logged
// and hidden behind a generic message.
func (h *ProfileHTTPHandler) writeUsecaseError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidProfileID):
		h.writeError(w, r, http.StatusBadRequest, "invalid profile id format", nil)
	case errors.Is(err, usecase.ErrMissingCredentials):
		h.writeError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrProfileAlreadyExists):
		h.writeError(w, r, http.StatusBadRequest, "a profile with this email already exists", nil)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.writeError(w, r, http.StatusBadRequest, "invalid credentials", nil)
	case errors.Is(err, usecase.ErrUnauthorized):
		h.writeError(w, r, http.StatusForbidden, "unauthorized access", nil)
	case errors.Is(err, usecase.ErrProfileNotFound):
		h.writeError(w, r, http.StatusNotFound, "profile not found", nil)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg(logMsg)
		h.writeError(w, r, http.StatusInternalServerError, "something went wrong", nil)
	}
}
