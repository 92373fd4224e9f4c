package web

import (
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Identifier string `json:"identifier"` // email
	Password   string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, refresh, err := s.authUC.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := s.auth.Mint(w, user.ID, user.Email, refresh); err != nil {
		s.log.Error().Err(err).Msg("mint access token")
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponseFrom(user))
}

// handleRefresh rotates the refresh token and re-mints the access token.
// Clients call it when the access cookie expires mid-session.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token := s.auth.RefreshTokenFromRequest(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, next, err := s.authUC.Refresh(r.Context(), token)
	if err != nil {
		s.auth.Clear(w)
		writeDomainError(w, err)
		return
	}
	if _, err := s.auth.Mint(w, user.ID, user.Email, next); err != nil {
		s.log.Error().Err(err).Msg("mint access token")
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponseFrom(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := s.auth.RefreshTokenFromRequest(r); token != "" {
		if err := s.authUC.Logout(r.Context(), token); err != nil {
			s.log.Error().Err(err).Msg("revoke refresh session")
		}
	}
	s.auth.Clear(w)
	writeMessage(w, http.StatusOK, "logged out")
}
