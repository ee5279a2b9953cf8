package handlers

import (
	"fmt"
	"net/http"

	"trackly/models"
	"trackly/storage"
)

// Register creates a new account. Username and email must both be unused;
// the username is checked first, so a payload colliding on both reports the
// username conflict.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		badInput(w, err)
		return
	}
	if err := user.Validate(true); err != nil {
		badInput(w, err)
		return
	}

	ctx := r.Context()

	n, err := h.store.Count(ctx, storage.CollUsers, storage.Filter{"username": user.Username})
	if err != nil {
		internalError(w, err)
		return
	}
	if n > 0 {
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	n, err = h.store.Count(ctx, storage.CollUsers, storage.Filter{"email": user.Email})
	if err != nil {
		internalError(w, err)
		return
	}
	if n > 0 {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	rec, err := storage.ToRecord(user)
	if err != nil {
		internalError(w, err)
		return
	}
	if _, err := h.store.Insert(ctx, storage.CollUsers, rec); err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login checks a username/password pair by exact equality. A miss is a 401;
// nothing distinguishes a wrong password from an unknown username.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.User
	if err := decodeBody(r, &creds); err != nil {
		badInput(w, err)
		return
	}
	if err := creds.Validate(false); err != nil {
		badInput(w, err)
		return
	}

	found, err := h.store.Find(r.Context(), storage.CollUsers, storage.Filter{
		"username": creds.Username,
		"password": creds.Password,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(found) == 0 {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Login successful for %s", creds.Username),
	})
}
