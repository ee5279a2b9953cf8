package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trackly/models"
	"trackly/storage"
)

// ListExams returns all exams for the username in the query.
func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	records, err := h.store.Find(r.Context(), storage.CollExams, storage.Filter{"username": username})
	if err != nil {
		internalError(w, err)
		return
	}

	exams := []models.Exam{}
	if err := storage.DecodeRecords(records, &exams); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, exams)
}

// CreateExam schedules an exam. Score and done are not settable here; they
// only arrive through updates once the exam has happened.
func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var exam models.Exam
	if err := decodeBody(r, &exam); err != nil {
		badInput(w, err)
		return
	}
	if err := exam.Validate(); err != nil {
		badInput(w, err)
		return
	}
	exam.ID = ""
	exam.Score = 0
	exam.Done = false

	rec, err := storage.ToRecord(exam)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollExams, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	exam.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Exam created",
		"exam":    exam,
	})
}

// UpdateExam applies a partial update to an exam. Empty patches are rejected
// before the store is touched.
func (h *Handler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patch, err := decodePatch(r, "course", "date", "planned_hours", "score", "done")
	if err != nil {
		badInput(w, err)
		return
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := r.Context()

	records, err := h.store.Find(ctx, storage.CollExams, storage.Filter{"id": id})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "Exam not found")
		return
	}

	var exam models.Exam
	if err := storage.DecodeRecord(records[0], &exam); err != nil {
		internalError(w, err)
		return
	}
	if err := storage.DecodeRecord(patch, &exam); err != nil {
		badInput(w, err)
		return
	}
	if err := exam.Validate(); err != nil {
		badInput(w, err)
		return
	}

	rec, err := storage.ToRecord(exam)
	if err != nil {
		internalError(w, err)
		return
	}
	if _, err := h.store.UpdateOne(ctx, storage.CollExams, storage.Filter{"id": id}, rec, false); err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exam updated",
		"exam":    exam,
	})
}
