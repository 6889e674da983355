package server

import (
	"net/http"
	"slices"

	"github.com/sanctum-app/sanctum/pkg/vault"
)

type journalRequest struct {
	Content string `json:"content" validate:"required"`
}

type journalResponse struct {
	Entry vault.JournalEntry `json:"entry"`

	// Insights accompany the saved entry but are never persisted.
	Insights string `json:"insights"`
}

// handleListJournal returns entries newest first for display; they are
// stored in creation order.
func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := s.vault.Journal()

	if err != nil {
		respondVaultError(w, err)
		return
	}

	slices.Reverse(entries)

	respondJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
	})
}

// handleAddJournal runs the save-and-analyze flow: the analyzer classifies
// the raw text, then the entry is appended with the mood and tags verbatim
// (or the fixed fallback when the analyzer is unreachable).
func (s *Server) handleAddJournal(w http.ResponseWriter, r *http.Request) {
	var req journalRequest

	if !s.decode(w, r, &req) {
		return
	}

	if !s.vault.Unlocked() {
		respondVaultError(w, vault.ErrLocked)
		return
	}

	analysis := s.chain.Analyze(r.Context(), req.Content)

	entry, err := s.vault.AddJournalEntry(req.Content, analysis.Mood, analysis.Tags)

	if err != nil {
		respondVaultError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, journalResponse{
		Entry:    entry,
		Insights: analysis.Insights,
	})
}
