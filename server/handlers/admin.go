package handlers

import (
	"net/http"

	"trackly/storage"
)

// ClearAssignments drops every assignment. Destructive and unauthenticated,
// like the rest of this surface.
func (h *Handler) ClearAssignments(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.DeleteMany(r.Context(), storage.CollAssignments, nil)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All assignments cleared",
		"deleted": result.DeletedCount,
	})
}

// ClearCourses drops every course.
func (h *Handler) ClearCourses(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.DeleteMany(r.Context(), storage.CollCourses, nil)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All courses cleared",
		"deleted": result.DeletedCount,
	})
}
