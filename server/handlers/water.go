package handlers

import (
	"net/http"

	"trackly/models"
	"trackly/storage"
)

// GetWaterSetting returns the water intake setting for the username in the
// query. A user without one gets a 404; the front end treats that as "not
// set up yet".
func (h *Handler) GetWaterSetting(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	records, err := h.store.Find(r.Context(), storage.CollWater, storage.Filter{"username": username})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "No water intake setting found")
		return
	}

	var setting models.WaterIntakeSetting
	if err := storage.DecodeRecord(records[0], &setting); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, setting)
}

// UpsertWaterSetting writes a user's water intake setting, creating it on
// first write and replacing it afterwards. The username is the upsert key:
// one setting per user. Two concurrent first writes race; whichever the
// store lands last wins.
func (h *Handler) UpsertWaterSetting(w http.ResponseWriter, r *http.Request) {
	var setting models.WaterIntakeSetting
	if err := decodeBody(r, &setting); err != nil {
		badInput(w, err)
		return
	}
	if err := setting.Validate(); err != nil {
		badInput(w, err)
		return
	}

	ctx := r.Context()

	rec, err := storage.ToRecord(setting)
	if err != nil {
		internalError(w, err)
		return
	}
	delete(rec, "id")
	delete(rec, "username") // part of the filter, not the patch

	filter := storage.Filter{"username": setting.Username}
	if _, err := h.store.UpdateOne(ctx, storage.CollWater, filter, rec, true); err != nil {
		internalError(w, err)
		return
	}

	// Read the stored row back so the response carries the identity the
	// store settled on.
	records, err := h.store.Find(ctx, storage.CollWater, filter)
	if err != nil {
		internalError(w, err)
		return
	}
	if len(records) > 0 {
		if err := storage.DecodeRecord(records[0], &setting); err != nil {
			internalError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Water intake setting saved",
		"water":   setting,
	})
}
