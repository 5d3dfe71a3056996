package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Record routes mirror the paths the web client already calls, query-style
// id filters included.
func registerRecordRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /airtable/kategorije", handler.ListLeagues)
	mux.HandleFunc("POST /airtable/kategorije", handler.CreateLeague)
	mux.HandleFunc("PUT /airtable/kategorije/{id}", handler.UpdateLeague)
	mux.HandleFunc("GET /airtable/sports", handler.GetSports)
	mux.HandleFunc("GET /airtable/teams", handler.GetTeams)
	mux.HandleFunc("GET /airtable/matches", handler.GetMatches)
	mux.HandleFunc("POST /airtable/matches", handler.CreateMatch)
	mux.HandleFunc("GET /airtable/locations", handler.GetLocations)
	mux.HandleFunc("POST /airtable/locations", handler.CreateLocation)
	mux.HandleFunc("PUT /airtable/locations/{id}", handler.UpdateLocation)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pages/home", handler.HomePage)
	mux.HandleFunc("GET /v1/pages/sports/{sportID}", handler.SportPage)
	mux.HandleFunc("GET /v1/pages/leagues/{leagueID}", handler.LeaguePage)
	mux.HandleFunc("GET /v1/pages/clubs/{clubID}", handler.ClubPage)
	mux.HandleFunc("GET /v1/pages/suggestion", handler.SuggestionPage)
}

func registerOnboardingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/onboarding/quiz", handler.SubmitQuiz)
}
