package httpapi

import (
	"net/http"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
)

type assigneeDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type leagueDTO struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Sport      []string     `json:"sport"`
	Notes      string       `json:"notes"`
	Assignee   *assigneeDTO `json:"assignee,omitempty"`
	LeagueType string       `json:"vrstaLige"`
	Status     string       `json:"status"`
	Teams      []string     `json:"teams"`
	StartDate  string       `json:"startdate"`
	EndDate    string       `json:"enddate"`
}

type sportDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type attachmentDTO struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

type teamDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Logo     []attachmentDTO `json:"logo"`
	Category []string        `json:"category"`
	Address  string          `json:"address"`
	Website  string          `json:"website"`
	Sport    []string        `json:"sport"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	Draws    int             `json:"draws"`
	Points   int             `json:"points"`
}

type matchDTO struct {
	ID          string   `json:"id"`
	MatchTime   string   `json:"matchTime"`
	Sport       []string `json:"sport"`
	League      []string `json:"kategorija"`
	MatchDate   string   `json:"matchDate"`
	Location    []string `json:"location"`
	HomeTeam    []string `json:"homeTeam"`
	AwayTeam    []string `json:"awayTeam"`
	HomeScore   *int     `json:"homeTeamScore"`
	AwayScore   *int     `json:"awayTeamScore"`
	Result      string   `json:"matchResult"`
	Officials   []string `json:"officials"`
	Statistics  []string `json:"statistics"`
	Tournaments []string `json:"tournaments"`
}

type locationDTO struct {
	ID                string          `json:"id"`
	VenueName         string          `json:"venueName"`
	Address           string          `json:"address"`
	Capacity          int             `json:"capacity"`
	Facilities        []string        `json:"facilities"`
	Photo             []attachmentDTO `json:"photo"`
	MatchesHosted     []string        `json:"matchesHosted"`
	TournamentsHosted []string        `json:"tournamentsHosted"`
	Sport             []string        `json:"sport"`
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func renderLeague(l league.League) leagueDTO {
	dto := leagueDTO{
		ID:         l.ID,
		Name:       l.Name,
		Sport:      orEmpty(l.Sport),
		Notes:      l.Notes,
		LeagueType: l.LeagueType,
		Status:     l.Status,
		Teams:      orEmpty(l.Teams),
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
	}
	if l.Assignee != (league.Assignee{}) {
		dto.Assignee = &assigneeDTO{ID: l.Assignee.ID, Email: l.Assignee.Email, Name: l.Assignee.Name}
	}
	return dto
}

func renderLeagues(leagues []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, renderLeague(l))
	}
	return out
}

func renderSport(s sport.Sport) sportDTO {
	return sportDTO{ID: s.ID, Name: s.Name, Icon: s.Icon}
}

func renderSports(sports []sport.Sport) []sportDTO {
	out := make([]sportDTO, 0, len(sports))
	for _, s := range sports {
		out = append(out, renderSport(s))
	}
	return out
}

func renderTeamAttachments(attachments []team.Attachment) []attachmentDTO {
	out := make([]attachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, attachmentDTO(a))
	}
	return out
}

func renderTeam(t team.Team) teamDTO {
	return teamDTO{
		ID:       t.ID,
		Name:     t.Name,
		Logo:     renderTeamAttachments(t.Logo),
		Category: orEmpty(t.Category),
		Address:  t.Address,
		Website:  t.Website,
		Sport:    orEmpty(t.Sport),
		Wins:     t.Wins,
		Losses:   t.Losses,
		Draws:    t.Draws,
		Points:   t.Points,
	}
}

func renderTeams(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, renderTeam(t))
	}
	return out
}

func renderMatch(m match.Match) matchDTO {
	return matchDTO{
		ID:          m.ID,
		MatchTime:   m.MatchTime,
		Sport:       orEmpty(m.Sport),
		League:      orEmpty(m.League),
		MatchDate:   m.MatchDate,
		Location:    orEmpty(m.Location),
		HomeTeam:    orEmpty(m.HomeTeam),
		AwayTeam:    orEmpty(m.AwayTeam),
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Result:      m.Result,
		Officials:   orEmpty(m.Officials),
		Statistics:  orEmpty(m.Statistics),
		Tournaments: orEmpty(m.Tournaments),
	}
}

func renderMatches(matches []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, renderMatch(m))
	}
	return out
}

func renderLocationPhotos(photos []location.Photo) []attachmentDTO {
	out := make([]attachmentDTO, 0, len(photos))
	for _, p := range photos {
		out = append(out, attachmentDTO(p))
	}
	return out
}

func renderLocation(l location.Location) locationDTO {
	return locationDTO{
		ID:                l.ID,
		VenueName:         l.VenueName,
		Address:           l.Address,
		Capacity:          l.Capacity,
		Facilities:        orEmpty(l.Facilities),
		Photo:             renderLocationPhotos(l.Photo),
		MatchesHosted:     orEmpty(l.MatchesHosted),
		TournamentsHosted: orEmpty(l.TournamentsHosted),
		Sport:             orEmpty(l.Sport),
	}
}

func renderLocations(locations []location.Location) []locationDTO {
	out := make([]locationDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, renderLocation(l))
	}
	return out
}

type leagueWriteRequest struct {
	Name       string       `json:"name" validate:"required"`
	Sport      []string     `json:"sport" validate:"required,min=1"`
	Notes      string       `json:"notes"`
	Assignee   *assigneeDTO `json:"assignee"`
	LeagueType string       `json:"vrstaLige"`
	Status     string       `json:"status" validate:"required"`
	StartDate  string       `json:"startdate"`
	EndDate    string       `json:"enddate"`
}

func (req leagueWriteRequest) draft() league.Draft {
	draft := league.Draft{
		Name:       req.Name,
		Sport:      req.Sport,
		Notes:      req.Notes,
		LeagueType: req.LeagueType,
		Status:     req.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.Assignee != nil {
		draft.Assignee = &league.Assignee{ID: req.Assignee.ID, Email: req.Assignee.Email, Name: req.Assignee.Name}
	}
	return draft
}

type matchCreateRequest struct {
	MatchTime   string   `json:"matchTime" validate:"required"`
	Sport       []string `json:"sport"`
	League      []string `json:"kategorija"`
	MatchDate   string   `json:"matchDate" validate:"required"`
	Location    []string `json:"location"`
	HomeTeam    []string `json:"homeTeam" validate:"required,min=1"`
	AwayTeam    []string `json:"awayTeam" validate:"required,min=1"`
	HomeScore   *int     `json:"homeTeamScore"`
	AwayScore   *int     `json:"awayTeamScore"`
	Result      string   `json:"matchResult"`
	Officials   []string `json:"officials"`
	Statistics  []string `json:"statistics"`
	Tournaments []string `json:"tournaments"`
}

func (req matchCreateRequest) draft() match.Draft {
	return match.Draft{
		MatchTime:   req.MatchTime,
		Sport:       req.Sport,
		League:      req.League,
		MatchDate:   req.MatchDate,
		Location:    req.Location,
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		Result:      req.Result,
		Officials:   req.Officials,
		Statistics:  req.Statistics,
		Tournaments: req.Tournaments,
	}
}

type locationWriteRequest struct {
	VenueName         string          `json:"venueName" validate:"required"`
	Address           string          `json:"address" validate:"required"`
	Capacity          int             `json:"capacity" validate:"min=0"`
	Facilities        []string        `json:"facilities"`
	Photo             []attachmentDTO `json:"photo"`
	MatchesHosted     []string        `json:"matchesHosted"`
	TournamentsHosted []string        `json:"tournamentsHosted"`
	Sport             []string        `json:"sport"`
}

func (req locationWriteRequest) draft() location.Draft {
	photos := make([]location.Photo, 0, len(req.Photo))
	for _, p := range req.Photo {
		photos = append(photos, location.Photo(p))
	}
	return location.Draft{
		VenueName:         req.VenueName,
		Address:           req.Address,
		Capacity:          req.Capacity,
		Facilities:        req.Facilities,
		Photo:             photos,
		MatchesHosted:     req.MatchesHosted,
		TournamentsHosted: req.TournamentsHosted,
		Sport:             req.Sport,
	}
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.catalog.ListLeagues(ctx)
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLeagues(leagues))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	var req leagueWriteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeRecordError(ctx, w, err)
		return
	}

	created, err := h.catalog.CreateLeague(ctx, req.draft())
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLeague(created))
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	var req leagueWriteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeRecordError(ctx, w, err)
		return
	}

	updated, err := h.catalog.UpdateLeague(ctx, r.PathValue("id"), req.draft())
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLeague(updated))
}

func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSports")
	defer span.End()

	if id := r.URL.Query().Get("id"); id != "" {
		sp, err := h.catalog.GetSport(ctx, id)
		if err != nil {
			writeRecordError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, renderSport(sp))
		return
	}

	sports, err := h.catalog.ListSports(ctx)
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderSports(sports))
}

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeams")
	defer span.End()

	query := r.URL.Query()
	if id := query.Get("id"); id != "" {
		tm, err := h.catalog.GetTeam(ctx, id)
		if err != nil {
			writeRecordError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, renderTeam(tm))
		return
	}

	var (
		teams []team.Team
		err   error
	)
	if categoryID := query.Get("categoryId"); categoryID != "" {
		teams, err = h.catalog.ListTeamsByCategory(ctx, categoryID)
	} else {
		teams, err = h.catalog.ListTeams(ctx)
	}
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderTeams(teams))
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatches")
	defer span.End()

	if id := r.URL.Query().Get("id"); id != "" {
		m, err := h.catalog.GetMatch(ctx, id)
		if err != nil {
			writeRecordError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, renderMatch(m))
		return
	}

	matches, err := h.catalog.ListMatches(ctx)
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderMatches(matches))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req matchCreateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeRecordError(ctx, w, err)
		return
	}

	created, err := h.catalog.CreateMatch(ctx, req.draft())
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderMatch(created))
}

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLocations")
	defer span.End()

	if id := r.URL.Query().Get("id"); id != "" {
		loc, err := h.catalog.GetLocation(ctx, id)
		if err != nil {
			writeRecordError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, renderLocation(loc))
		return
	}

	locations, err := h.catalog.ListLocations(ctx)
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLocations(locations))
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLocation")
	defer span.End()

	var req locationWriteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeRecordError(ctx, w, err)
		return
	}

	created, err := h.catalog.CreateLocation(ctx, req.draft())
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLocation(created))
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLocation")
	defer span.End()

	var req locationWriteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeRecordError(ctx, w, err)
		return
	}

	updated, err := h.catalog.UpdateLocation(ctx, r.PathValue("id"), req.draft())
	if err != nil {
		writeRecordError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, renderLocation(updated))
}
