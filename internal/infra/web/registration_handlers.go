package web

import (
	"encoding/json"
	"net/http"

	"article-hub/internal/domain/model"
)

type registerRequest struct {
	FlowID          string `json:"flowId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"dateOfBirth"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type wizardResponse struct {
	FlowID      string     `json:"flowId"`
	CurrentStep model.Step `json:"currentStep"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info := model.PersonalInfo{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Email:           req.Email,
		DateOfBirth:     req.DateOfBirth,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	draft, errs, err := s.regUC.SubmitBasicInfo(r.Context(), req.FlowID, info)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse{FlowID: draft.FlowID, CurrentStep: draft.CurrentStep})
}

type verifyOtpRequest struct {
	FlowID string   `json:"flowId"`
	Otp    []string `json:"otp"`
}

func (s *Server) handleVerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, errs, err := s.regUC.VerifyCode(r.Context(), req.FlowID, req.Otp)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse{FlowID: draft.FlowID, CurrentStep: draft.CurrentStep})
}

type flowRequest struct {
	FlowID string `json:"flowId"`
}

func (s *Server) handleResendOtp(w http.ResponseWriter, r *http.Request) {
	var req flowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.regUC.ResendCode(r.Context(), req.FlowID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "verification code sent")
}

type completeSignupRequest struct {
	FlowID string   `json:"flowId"`
	Topics []string `json:"topics"`
}

func (s *Server) handleCompleteSignup(w http.ResponseWriter, r *http.Request) {
	var req completeSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, errs, err := s.regUC.SubmitTopics(r.Context(), req.FlowID, req.Topics)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	writeJSON(w, http.StatusCreated, profileResponseFrom(user))
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	var req flowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft, err := s.regUC.Retreat(r.Context(), req.FlowID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse{FlowID: draft.FlowID, CurrentStep: draft.CurrentStep})
}
