package web

import (
	"encoding/json"
	"net/http"
	"time"

	"article-hub/internal/domain/model"
	"article-hub/internal/usecase"
)

type profileResponse struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	DateOfBirth string   `json:"dateOfBirth"`
	Bio         string   `json:"bio,omitempty"`
	Topics      []string `json:"topics"`
}

func profileResponseFrom(u *model.User) profileResponse {
	return profileResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth.Format(time.DateOnly),
		Bio:         u.Bio,
		Topics:      u.Topics,
	}
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.profileUC.Get(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponseFrom(user))
}

type profileUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth"`
	Bio         *string `json:"bio"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, errs, err := s.profileUC.Update(r.Context(), userID(r), usecase.ProfileEdit{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Bio:         req.Bio,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, profileResponseFrom(user))
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uid := userID(r)
	errs, err := s.profileUC.ResetPassword(r.Context(), uid, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	// A password change invalidates every open session; the caller signs
	// back in with the new password.
	if err := s.authUC.LogoutAll(r.Context(), uid); err != nil {
		s.log.Error().Err(err).Str("user_id", uid).Msg("revoke sessions after password reset")
	}
	s.auth.Clear(w)
	writeMessage(w, http.StatusOK, "password updated")
}

type preferencesRequest struct {
	Topics []string `json:"topics"`
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, errs, err := s.profileUC.UpdatePreferences(r.Context(), userID(r), req.Topics)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, profileResponseFrom(user))
}
