package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trackly/models"
	"trackly/storage"
)

// ListAssignments returns all assignments for the username in the query.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	records, err := h.store.Find(r.Context(), storage.CollAssignments, storage.Filter{"username": username})
	if err != nil {
		internalError(w, err)
		return
	}

	assignments := []models.Assignment{}
	if err := storage.DecodeRecords(records, &assignments); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}

// CreateAssignment adds an assignment, filling in the documented defaults
// for status, priority and type when the client leaves them blank.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var assignment models.Assignment
	if err := decodeBody(r, &assignment); err != nil {
		badInput(w, err)
		return
	}
	if err := assignment.Validate(); err != nil {
		badInput(w, err)
		return
	}
	assignment.ID = ""
	if assignment.Status == "" {
		assignment.Status = models.DefaultStatus
	}
	if assignment.Priority == "" {
		assignment.Priority = models.DefaultPriority
	}
	if assignment.Type == "" {
		assignment.Type = models.DefaultType
	}

	rec, err := storage.ToRecord(assignment)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollAssignments, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	assignment.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Assignment created",
		"assignment": assignment,
	})
}

// UpdateAssignment applies a partial update to an assignment.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patch, err := decodePatch(r, "title", "course", "dueDate", "status", "priority", "type", "points")
	if err != nil {
		badInput(w, err)
		return
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := r.Context()

	records, err := h.store.Find(ctx, storage.CollAssignments, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	var assignment models.Assignment
	if err := storage.DecodeRecord(records[0], &assignment); err != nil {
		internalError(w, err)
		return
	}
	if err := storage.DecodeRecord(patch, &assignment); err != nil {
		badInput(w, err)
		return
	}
	if err := assignment.Validate(); err != nil {
		badInput(w, err)
		return
	}

	rec, err := storage.ToRecord(assignment)
	if err != nil {
		internalError(w, err)
		return
	}
	if _, err := h.store.UpdateOne(ctx, storage.CollAssignments, storage.Filter{"id": id}, rec, false); err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Assignment updated",
		"assignment": assignment,
	})
}

// DeleteAssignment removes an assignment by its id.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.store.DeleteOne(r.Context(), storage.CollAssignments, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Assignment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
