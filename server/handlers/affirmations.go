package handlers

import (
	"net/http"

	"trackly/models"
	"trackly/storage"
)

// ListAffirmations returns the whole affirmation catalog. The catalog is
// global, so no username scoping applies.
func (h *Handler) ListAffirmations(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Find(r.Context(), storage.CollAffirmations, nil)
	if err != nil {
		internalError(w, err)
		return
	}

	affirmations := []models.Affirmation{}
	if err := storage.DecodeRecords(records, &affirmations); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, affirmations)
}

// CreateAffirmation appends one affirmation to the catalog.
func (h *Handler) CreateAffirmation(w http.ResponseWriter, r *http.Request) {
	var affirmation models.Affirmation
	if err := decodeBody(r, &affirmation); err != nil {
		badInput(w, err)
		return
	}
	if err := affirmation.Validate(); err != nil {
		badInput(w, err)
		return
	}
	affirmation.ID = ""

	rec, err := storage.ToRecord(affirmation)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollAffirmations, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	affirmation.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Affirmation created",
		"affirmation": affirmation,
	})
}
