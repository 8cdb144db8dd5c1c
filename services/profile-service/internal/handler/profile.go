package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/payload"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/usecase"
)

func (h *ProfileHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.profileUsecase.Register(r.Context(), usecase.RegisterParams{
		PersonalInfo:      req.PersonalInfo,
		EmploymentHistory: req.EmploymentHistory,
		AdditionalInfo:    req.AdditionalInfo,
		Email:             req.LoginDetails.Email,
		Password:          req.LoginDetails.Password,
	})
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to register profile")
		return
	}

	h.writeJSON(w, r, http.StatusCreated, payload.RegisterResponse{ID: id})
}

func (h *ProfileHTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to fetch profile")
		return
	}

	h.writeJSON(w, r, http.StatusOK, profile)
}

func (h *ProfileHTTPHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, err := h.currentSession(r)
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to resolve session")
		return
	}
	if session == nil {
		h.writeError(w, r, http.StatusForbidden, "unauthorized access", nil)
		return
	}

	var req payload.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileUsecase.UpdateProfile(r.Context(), session, chi.URLParam(r, "id"), toUpdateParams(req))
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to update profile")
		return
	}

	h.writeJSON(w, r, http.StatusOK, profile)
}

func (h *ProfileHTTPHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	session, err := h.currentSession(r)
	if err != nil {
		h.writeUsecaseError(w, r, err, "failed to resolve session")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.profileUsecase.DeleteProfile(r.Context(), session, id); err != nil {
		h.writeUsecaseError(w, r, err, "failed to delete profile")
		return
	}

	if session.ProfileID == id {
		if err := h.authUsecase.Logout(r.Context(), h.sessionToken(r)); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to destroy session of deleted profile")
		}
		h.clearSessionCookie(w)
	}

	h.writeMessage(w, r, http.StatusOK, "profile deleted successfully")
}

func toUpdateParams(req payload.UpdateProfileRequest) usecase.UpdateProfileParams {
	params := usecase.UpdateProfileParams{
		EmploymentHistory: req.EmploymentHistory,
	}

	if pi := req.PersonalInfo; pi != nil {
		params.FirstName = pi.FirstName
		params.LastName = pi.LastName
		params.DateOfBirth = pi.DateOfBirth
		params.PlaceOfBirth = pi.PlaceOfBirth
		params.Nationality = pi.Nationality
		params.EducationalBackground = pi.EducationalBackground
	}

	if ai := req.AdditionalInfo; ai != nil {
		params.Interests = ai.Interests
		params.Goals = ai.Goals
	}

	if ld := req.LoginDetails; ld != nil {
		params.Email = ld.Email
		params.Password = ld.Password
	}

	return params
}
