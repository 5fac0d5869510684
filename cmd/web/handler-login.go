package main

import (
	"net/http"
	"strings"

	"github.com/myrjola/adaptlearn/internal/contexthelpers"
	"github.com/myrjola/adaptlearn/internal/errors"
)

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Email     string `json:"email"`
	CSRFToken string `json:"csrfToken"`
}

// login identifies the user by email and starts a session. The response
// carries the CSRF token required for all subsequent mutating requests.
func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	// Renew the session token on privilege change to prevent session fixation.
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(r.Context(), string(userEmailSessionKey), email)

	app.writeJSON(w, r, http.StatusOK, loginResponse{
		Email:     email,
		CSRFToken: contexthelpers.CSRFToken(r.Context()),
	})
}

// logout destroys the session.
func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "destroy session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
