package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/adaptlearn/internal/contexthelpers"
	"github.com/myrjola/adaptlearn/internal/models"
)

type completeActivityRequest struct {
	Type    models.ActivityType `json:"type"`
	Title   string              `json:"title"`
	Details json.RawMessage     `json:"details,omitempty"`
}

// completeActivity records a finished quiz or simulation and returns the
// updated tracking state. The server assigns the identifier and timestamp and
// recomputes the quiz score from the answers so clients cannot inflate it.
// Role-play completions are not accepted here; they are recorded by the
// session manager when a session ends.
func (app *application) completeActivity(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	var req completeActivityRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	item := models.HistoryItem{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Title:     req.Title,
		Timestamp: time.Now(),
	}

	switch req.Type {
	case models.ActivityQuiz:
		var details models.QuizDetails
		if err := json.Unmarshal(req.Details, &details); err != nil {
			app.clientError(w, r, http.StatusUnprocessableEntity)
			return
		}
		details.Score = details.ComputeScore()
		item.Details = details
	case models.ActivitySimulation:
		var details models.SimulationDetails
		if err := json.Unmarshal(req.Details, &details); err != nil {
			app.clientError(w, r, http.StatusUnprocessableEntity)
			return
		}
		item.Details = details
	default:
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	snapshot, err := app.tracker.Complete(r.Context(), email, item)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, snapshot)
}
