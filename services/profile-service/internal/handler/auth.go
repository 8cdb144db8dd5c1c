package handler

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/payload"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/usecase"
)

func (h *ProfileHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:         req.Email,
		Password:      req.Password,
		PreviousToken: h.sessionToken(r),
	})
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to log in")
		return
	}

	h.setSessionCookie(w, token)
	h.writeMessage(w, r, http.StatusOK, "logged in successfully")
}

func (h *ProfileHTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context(), h.sessionToken(r)); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to destroy session")
	}

	h.clearSessionCookie(w)
	h.writeMessage(w, r, http.StatusOK, "logged out successfully")
}
