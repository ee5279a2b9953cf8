package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"trackly/models"
	"trackly/storage"
)

// ListCourses returns the whole course catalog.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Find(r.Context(), storage.CollCourses, nil)
	if err != nil {
		internalError(w, err)
		return
	}

	courses := []models.Course{}
	if err := storage.DecodeRecords(records, &courses); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, courses)
}

// CreateCourse adds a course. Codes are not unique; a duplicate code simply
// creates another row.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if err := decodeBody(r, &course); err != nil {
		badInput(w, err)
		return
	}
	if err := course.Validate(); err != nil {
		badInput(w, err)
		return
	}
	course.ID = ""

	rec, err := storage.ToRecord(course)
	if err != nil {
		internalError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), storage.CollCourses, rec)
	if err != nil {
		internalError(w, err)
		return
	}
	course.ID = id

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Course created",
		"course":  course,
	})
}

// GetCourseByCode looks a course up by its code, the secondary key. With
// duplicate codes the first match wins.
func (h *Handler) GetCourseByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	records, err := h.store.Find(r.Context(), storage.CollCourses, storage.Filter{"code": code})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	var course models.Course
	if err := storage.DecodeRecord(records[0], &course); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}
