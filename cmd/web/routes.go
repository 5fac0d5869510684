package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate, commonContext)
	protected := session.Append(app.requireAuthentication)

	mux.HandleFunc("GET /api/healthy", app.healthy)

	mux.Handle("POST /api/login", session.ThenFunc(app.login))
	mux.Handle("POST /api/logout", protected.ThenFunc(app.logout))

	mux.Handle("GET /api/state", protected.ThenFunc(app.state))
	mux.Handle("POST /api/activities", protected.ThenFunc(app.completeActivity))

	mux.Handle("POST /api/quiz", protected.ThenFunc(app.generateQuiz))
	mux.Handle("POST /api/report", protected.ThenFunc(app.generateReport))
	mux.Handle("POST /api/achievements/suggest", protected.ThenFunc(app.suggestAchievements))
	mux.Handle("POST /api/pathway", protected.ThenFunc(app.generatePathway))
	mux.Handle("POST /api/career", protected.ThenFunc(app.suggestCareers))
	mux.Handle("POST /api/simulation/scenario", protected.ThenFunc(app.generateScenario))

	mux.Handle("POST /api/role-play/start", protected.ThenFunc(app.startRolePlay))
	mux.Handle("POST /api/role-play/message", protected.ThenFunc(app.sendRolePlayMessage))
	mux.Handle("POST /api/role-play/end", protected.ThenFunc(app.endRolePlay))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
