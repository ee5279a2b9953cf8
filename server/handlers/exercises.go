package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trackly/models"
	"trackly/storage"
)

// ListExercises returns a user's exercise library, seeding the default
// catalog on the first read for that username. The seed guard is a count
// check, so a second read never reseeds.
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	if err := storage.SeedExercises(ctx, h.store, username); err != nil {
		internalError(w, err)
		return
	}

	records, err := h.store.Find(ctx, storage.CollExercises, storage.Filter{"username": username})
	if err != nil {
		internalError(w, err)
		return
	}

	exercises := []models.Exercise{}
	if err := storage.DecodeRecords(records, &exercises); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, exercises)
}

// CreateExercise adds a user-defined exercise. Cardio entries have their
// compound flag forced off no matter what the client sent.
func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var exercise models.Exercise
	if err := decodeBody(r, &exercise); err != nil {
		badInput(w, err)
		return
	}
	if err := exercise.Validate(); err != nil {
		badInput(w, err)
		return
	}
	exercise.Normalize()
	exercise.ID = ""
	exercise.CreatedByUser = true

	rec, err := storage.ToRecord(exercise)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollExercises, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	exercise.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Exercise created",
		"exercise": exercise,
	})
}

// UpdateExercise applies a partial update to an exercise. Only fields
// present and non-null in the body are applied; an empty patch is rejected
// before the store is touched. The cardio rule runs on the merged result, so
// switching category to Cardio clears compound even when the same patch sets
// it.
func (h *Handler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patch, err := decodePatch(r, "name", "muscle", "equipment", "compound", "category")
	if err != nil {
		badInput(w, err)
		return
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := r.Context()

	records, err := h.store.Find(ctx, storage.CollExercises, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "Exercise not found")
		return
	}

	var exercise models.Exercise
	if err := storage.DecodeRecord(records[0], &exercise); err != nil {
		internalError(w, err)
		return
	}
	if err := storage.DecodeRecord(patch, &exercise); err != nil {
		badInput(w, err)
		return
	}
	if err := exercise.Validate(); err != nil {
		badInput(w, err)
		return
	}
	exercise.Normalize()

	rec, err := storage.ToRecord(exercise)
	if err != nil {
		internalError(w, err)
		return
	}
	if _, err := h.store.UpdateOne(ctx, storage.CollExercises, storage.Filter{"id": id}, rec, false); err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Exercise updated",
		"exercise": exercise,
	})
}

// DeleteExercise removes an exercise by its id.
func (h *Handler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.store.DeleteOne(r.Context(), storage.CollExercises, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Exercise not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
