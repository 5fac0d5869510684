package main

import (
	"net/http"

	"github.com/myrjola/adaptlearn/internal/contexthelpers"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/myrjola/adaptlearn/internal/roleplay"
)

type rolePlaySessionResponse struct {
	SessionID string               `json:"sessionId"`
	State     roleplay.State       `json:"state"`
	Messages  []models.ChatMessage `json:"messages"`
}

// startRolePlay begins a role-play session for the user, replacing any
// session already in progress.
func (app *application) startRolePlay(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	var scenario models.Scenario
	if err := app.decodeJSON(w, r, &scenario); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if scenario.Description == "" || scenario.UserRole == "" || scenario.AIRole == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	session, err := app.rolePlayManager.Start(r.Context(), email, scenario)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, rolePlaySessionResponse{
		SessionID: session.ID(),
		State:     session.State(),
		Messages:  session.Transcript(),
	})
}

type rolePlayMessageRequest struct {
	Content string `json:"content"`
}

type rolePlayMessageResponse struct {
	Message  models.ChatMessage   `json:"message"`
	Messages []models.ChatMessage `json:"messages"`
}

// sendRolePlayMessage runs one turn of the user's active session.
func (app *application) sendRolePlayMessage(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	var req rolePlayMessageRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	session, err := app.rolePlayManager.Get(email)
	if err != nil {
		app.clientError(w, r, http.StatusNotFound)
		return
	}

	reply, err := session.SendMessage(r.Context(), req.Content)
	switch {
	case errors.Is(err, roleplay.ErrTurnPending), errors.Is(err, roleplay.ErrNotActive):
		app.clientError(w, r, http.StatusConflict)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, rolePlayMessageResponse{
		Message:  reply,
		Messages: session.Transcript(),
	})
}

type rolePlayEndResponse struct {
	Credited bool `json:"credited"`
}

// endRolePlay terminates the user's active session. Credit is given only when
// the conversation went beyond the opening line.
func (app *application) endRolePlay(w http.ResponseWriter, r *http.Request) {
	email := contexthelpers.AuthenticatedUserEmail(r.Context())

	credited, err := app.rolePlayManager.End(r.Context(), email)
	switch {
	case errors.Is(err, roleplay.ErrNoSession):
		app.clientError(w, r, http.StatusNotFound)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, rolePlayEndResponse{Credited: credited})
}
