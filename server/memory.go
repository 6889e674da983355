package server

import (
	"net/http"

	"github.com/sanctum-app/sanctum/pkg/vault"

	"github.com/go-chi/chi/v5"
)

type memoryRequest struct {
	Content    string `json:"content" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Importance int    `json:"importance" validate:"omitempty,min=1,max=10"`
}

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := s.vault.Memories()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	groups := vault.GroupMemories(memories)

	if groups == nil {
		groups = []vault.MemoryGroup{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total":  len(memories),
		"groups": groups,
	})
}

func (s *Server) handleAddMemory(w http.ResponseWriter, r *http.Request) {
	var req memoryRequest

	if !s.decode(w, r, &req) {
		return
	}

	memory, err := s.vault.AddMemory(req.Content, vault.MemoryCategory(req.Category), req.Importance)

	if err != nil {
		if !vaultError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, memory)
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "memoryID")

	if err := s.vault.DeleteMemory(id); err != nil {
		respondVaultError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
