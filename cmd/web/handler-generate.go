package main

import (
	"net/http"

	"github.com/myrjola/adaptlearn/internal/ai"
	"github.com/myrjola/adaptlearn/internal/contexthelpers"
	"github.com/myrjola/adaptlearn/internal/errors"
)

// generateQuiz asks the model for a quiz on the requested topic.
func (app *application) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req ai.QuizRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	response, err := app.aiClient.GenerateQuiz(r.Context(), req)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidQuizRequest) {
			app.clientError(w, r, http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type reportRequest struct {
	Domain      string `json:"domain"`
	Goals       string `json:"goals"`
	Preferences string `json:"preferences"`
}

// generateReport builds a performance report over the user's stored progress
// and history so clients cannot fabricate the inputs.
func (app *application) generateReport(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	var req reportRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	snapshot := app.tracker.State(r.Context(), email)
	response, err := app.aiClient.GenerateReport(r.Context(), ai.ReportRequest{
		Domain:          req.Domain,
		LearningHistory: snapshot.Counters,
		ActivityLog:     snapshot.History,
		Goals:           req.Goals,
		Preferences:     req.Preferences,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

// suggestAchievements returns display-only achievement ideas from the model,
// seeded with the user's actual progress and unlocked titles.
func (app *application) suggestAchievements(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	snapshot := app.tracker.State(r.Context(), email)
	response, err := app.aiClient.SuggestAchievements(r.Context(), ai.SuggestAchievementsRequest{
		Progress:             snapshot.Counters,
		UnlockedAchievements: snapshot.UnlockedTitles(),
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

func (app *application) generatePathway(w http.ResponseWriter, r *http.Request) {
	var req ai.PathwayRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	response, err := app.aiClient.GeneratePathway(r.Context(), req)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

func (app *application) suggestCareers(w http.ResponseWriter, r *http.Request) {
	var req ai.CareerRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	response, err := app.aiClient.SuggestCareers(r.Context(), req)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type scenarioRequest struct {
	Domain string `json:"domain"`
}

func (app *application) generateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if req.Domain == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	response, err := app.aiClient.GenerateScenario(r.Context(), req.Domain)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, response)
}
