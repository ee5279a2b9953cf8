package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trackly/models"
	"trackly/storage"
)

// Handler bundles the request handlers with the persistence context they
// run against. The store is handed in by the process entry point; handlers
// hold no other state between requests.
type Handler struct {
	store storage.Store
}

// New creates a Handler over the given store.
func New(store storage.Store) *Handler {
	return &Handler{store: store}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		log.Println("failed to marshal JSON response:", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		log.Println("failed to write HTTP response:", err)
	}
}

// respondError writes the error envelope the clients expect.
func respondError(w http.ResponseWriter, code int, detail string) {
	respondJSON(w, code, map[string]string{"detail": detail})
}

// internalError reports an unexpected store or runtime failure. The raw
// error text is echoed to the client, matching the behavior of every
// revision of this backend.
func internalError(w http.ResponseWriter, err error) {
	log.Println("internal error:", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}

// badInput maps a failure to 400, preferring the validation detail when the
// error carries one.
func badInput(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Detail)
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// decodePatch decodes a partial-update body, keeping only the allowed fields
// that are present and non-null. An empty result means there is nothing to
// apply; callers must reject it before touching the store.
func decodePatch(r *http.Request, allowed ...string) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errors.New("invalid request body")
	}
	patch := map[string]interface{}{}
	for _, k := range allowed {
		if v, ok := raw[k]; ok && v != nil {
			patch[k] = v
		}
	}
	return patch, nil
}

// requireUsername pulls the username query parameter every per-user listing
// takes.
func requireUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return "", false
	}
	return username, true
}
