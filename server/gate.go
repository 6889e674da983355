package server

import (
	"errors"
	"net/http"

	"github.com/sanctum-app/sanctum/pkg/gate"
)

type enrollRequest struct {
	Passphrase   string `json:"passphrase" validate:"required"`
	Confirmation string `json:"confirmation"`

	// ConfirmWipe acknowledges that re-enrolling destroys all stored data.
	ConfirmWipe bool `json:"confirm_wipe"`
}

type unlockRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleGateStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{
		"enrolled": s.gate.Enrolled(),
	})
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest

	if !s.decode(w, r, &req) {
		return
	}

	var token string
	var err error

	if s.gate.Enrolled() {
		if !req.ConfirmWipe {
			respondError(w, http.StatusConflict, "a passphrase already exists; re-enrolling permanently erases all stored data and requires confirm_wipe")
			return
		}

		token, err = s.gate.Reenroll(req.Passphrase, req.Confirmation)
	} else {
		token, err = s.gate.Enroll(req.Passphrase, req.Confirmation)
	}

	if err != nil {
		respondError(w, gateStatus(err), err.Error())
		return
	}

	s.vault.Unlock()

	respondJSON(w, http.StatusCreated, sessionResponse{Token: token})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest

	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.gate.Unlock(req.Passphrase)

	if err != nil {
		respondError(w, gateStatus(err), err.Error())
		return
	}

	s.vault.Unlock()

	respondJSON(w, http.StatusOK, sessionResponse{Token: token})
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	s.gate.Lock()
	s.vault.Lock()

	w.WriteHeader(http.StatusNoContent)
}

func gateStatus(err error) int {
	switch {
	case errors.Is(err, gate.ErrIncorrectPassphrase):
		return http.StatusUnauthorized

	case errors.Is(err, gate.ErrAlreadyEnrolled), errors.Is(err, gate.ErrNotEnrolled):
		return http.StatusConflict

	case errors.Is(err, gate.ErrPassphraseTooShort), errors.Is(err, gate.ErrPassphraseMismatch):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
