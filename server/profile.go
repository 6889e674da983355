package server

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sanctum-app/sanctum/pkg/vault"
)

type profileRequest struct {
	Name               string   `json:"name" validate:"required"`
	CommunicationStyle string   `json:"communicationStyle"`
	CurrentFocus       string   `json:"currentFocus"`
	Traits             []string `json:"traits"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.vault.Profile()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest

	if !s.decode(w, r, &req) {
		return
	}

	profile := vault.UserProfile{
		Name:               req.Name,
		CommunicationStyle: req.CommunicationStyle,
		CurrentFocus:       req.CurrentFocus,
		Traits:             req.Traits,
	}

	if profile.Traits == nil {
		profile.Traits = []string{}
	}

	if err := s.vault.SetProfile(profile); err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.vault.Stats()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	profile, err := s.vault.Profile()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"stats":   stats,
	})
}

// vaultError reports whether err belongs to the vault taxonomy, as opposed
// to a caller-input problem.
func vaultError(err error) bool {
	return errors.Is(err, vault.ErrLocked) || errors.Is(err, vault.ErrNotFound)
}

func respondVaultError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vault.ErrLocked):
		respondError(w, http.StatusUnauthorized, "vault is locked")

	case errors.Is(err, vault.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")

	default:
		// Storage failures carry filesystem paths; keep those out of the
		// response body.
		log.WithError(err).Error("vault operation failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
