package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trackly/models"
	"trackly/storage"
)

// ListHabits returns all habits belonging to the username in the query.
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	records, err := h.store.Find(r.Context(), storage.CollHabits, storage.Filter{"username": username})
	if err != nil {
		internalError(w, err)
		return
	}

	habits := []models.Habit{}
	if err := storage.DecodeRecords(records, &habits); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, habits)
}

// CreateHabit adds a habit for a user. Description is optional and defaults
// to empty.
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var habit models.Habit
	if err := decodeBody(r, &habit); err != nil {
		badInput(w, err)
		return
	}
	if err := habit.Validate(); err != nil {
		badInput(w, err)
		return
	}
	habit.ID = ""

	rec, err := storage.ToRecord(habit)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollHabits, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	habit.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Habit created",
		"habit":   habit,
	})
}

// DeleteHabit removes a habit by its id. Zero rows affected means the habit
// was never there, which is a 404.
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.store.DeleteOne(r.Context(), storage.CollHabits, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Habit not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
