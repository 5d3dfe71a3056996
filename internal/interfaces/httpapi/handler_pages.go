package httpapi

import (
	"net/http"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/domain/standings"
)

type cardTeamDTO struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type matchCardDTO struct {
	ID         string      `json:"id"`
	Sport      string      `json:"sport"`
	HomeTeam   cardTeamDTO `json:"homeTeam"`
	AwayTeam   cardTeamDTO `json:"awayTeam"`
	Venue      string      `json:"venue"`
	Time       string      `json:"time"`
	Date       string      `json:"date"`
	IsFavorite bool        `json:"isFavorite"`
	Variant    string      `json:"variant"`
}

type standingsRowDTO struct {
	Position  int     `json:"position"`
	Team      teamDTO `json:"team"`
	Played    int     `json:"played"`
	Highlight string  `json:"highlight"`
}

type homePageDTO struct {
	UserID               string         `json:"userId"`
	Sports               []sportDTO     `json:"sports"`
	SportsError          string         `json:"sportsError,omitempty"`
	Recommendations      []matchCardDTO `json:"recommendations"`
	RecommendationsError string         `json:"recommendationsError,omitempty"`
}

type sportPageDTO struct {
	Sport      sportDTO  `json:"sport"`
	Teams      []teamDTO `json:"teams"`
	TeamsError string    `json:"teamsError,omitempty"`
}

type leaguePageDTO struct {
	League         leagueDTO         `json:"league"`
	Matches        []matchDTO        `json:"matches"`
	MatchesError   string            `json:"matchesError,omitempty"`
	Standings      []standingsRowDTO `json:"standings"`
	StandingsError string            `json:"standingsError,omitempty"`
}

type clubPageDTO struct {
	Team           teamDTO           `json:"team"`
	Matches        []matchDTO        `json:"matches"`
	MatchesError   string            `json:"matchesError,omitempty"`
	Standings      []standingsRowDTO `json:"standings"`
	StandingsError string            `json:"standingsError,omitempty"`
}

type suggestionPageDTO struct {
	HasResult            bool           `json:"hasResult"`
	SportID              string         `json:"sportId"`
	SportName            string         `json:"sportName"`
	RecommendedTeams     []string       `json:"recommendedTeams"`
	Teams                []teamDTO      `json:"teams"`
	TeamsError           string         `json:"teamsError,omitempty"`
	Recommendations      []matchCardDTO `json:"recommendations"`
	RecommendationsError string         `json:"recommendationsError,omitempty"`
}

func renderMatchCard(card recommendation.MatchCard) matchCardDTO {
	return matchCardDTO{
		ID:         card.ID,
		Sport:      card.Sport,
		HomeTeam:   cardTeamDTO{Name: card.HomeTeam.Name, Logo: card.HomeTeam.LogoURL},
		AwayTeam:   cardTeamDTO{Name: card.AwayTeam.Name, Logo: card.AwayTeam.LogoURL},
		Venue:      card.Venue,
		Time:       card.Time,
		Date:       card.Date,
		IsFavorite: card.IsFavorite,
		Variant:    card.Variant,
	}
}

func renderMatchCards(cards []recommendation.MatchCard) []matchCardDTO {
	out := make([]matchCardDTO, 0, len(cards))
	for _, card := range cards {
		out = append(out, renderMatchCard(card))
	}
	return out
}

func renderStandings(rows []standings.Row) []standingsRowDTO {
	out := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingsRowDTO{
			Position:  row.Position,
			Team:      renderTeam(row.Team),
			Played:    row.Played,
			Highlight: highlightLabel(row.Highlight),
		})
	}
	return out
}

func highlightLabel(class int) string {
	switch class {
	case standings.HighlightPrimary:
		return "primary"
	case standings.HighlightSecondary:
		return "secondary"
	default:
		return ""
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HomePage")
	defer span.End()

	// First load registers the installation with the recommendation backend.
	// Failures retry on the next load and never block the page.
	if h.onboarding != nil {
		_ = h.onboarding.EnsureInitialized(ctx)
	}

	page, err := h.pages.Home(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, homePageDTO{
		UserID:               page.UserID,
		Sports:               renderSports(page.Sports),
		SportsError:          errString(page.SportsErr),
		Recommendations:      renderMatchCards(page.Cards),
		RecommendationsError: errString(page.CardsErr),
	})
}

func (h *Handler) SportPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SportPage")
	defer span.End()

	page, err := h.pages.Sport(ctx, r.PathValue("sportID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, sportPageDTO{
		Sport:      renderSport(page.Sport),
		Teams:      renderTeams(page.Teams),
		TeamsError: errString(page.TeamsErr),
	})
}

func (h *Handler) LeaguePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaguePage")
	defer span.End()

	page, err := h.pages.League(ctx, r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, leaguePageDTO{
		League:         renderLeague(page.League),
		Matches:        renderMatches(page.Matches),
		MatchesError:   errString(page.MatchesErr),
		Standings:      renderStandings(page.Standings),
		StandingsError: errString(page.StandingsErr),
	})
}

func (h *Handler) ClubPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClubPage")
	defer span.End()

	page, err := h.pages.Club(ctx, r.PathValue("clubID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, clubPageDTO{
		Team:           renderTeam(page.Team),
		Matches:        renderMatches(page.Matches),
		MatchesError:   errString(page.MatchesErr),
		Standings:      renderStandings(page.Standings),
		StandingsError: errString(page.StandingsErr),
	})
}

func (h *Handler) SuggestionPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestionPage")
	defer span.End()

	page, err := h.pages.Suggestion(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, suggestionPageDTO{
		HasResult:            page.HasResult,
		SportID:              page.SportID,
		SportName:            page.SportName,
		RecommendedTeams:     orEmpty(page.RecommendedTeams),
		Teams:                renderTeams(page.Teams),
		TeamsError:           errString(page.TeamsErr),
		Recommendations:      renderMatchCards(page.Cards),
		RecommendationsError: errString(page.CardsErr),
	})
}
