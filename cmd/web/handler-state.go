package main

import (
	"net/http"

	"github.com/myrjola/adaptlearn/internal/contexthelpers"
)

// state returns the user's complete tracking state: progress counters,
// achievements with live progress percentages, and the newest-first history.
func (app *application) state(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())
	snapshot := app.tracker.State(r.Context(), email)
	app.writeJSON(w, r, http.StatusOK, snapshot)
}
