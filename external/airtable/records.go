package airtable

import (
	"strings"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
	"github.com/mystixxx/altersport/internal/platform/datefmt"
)

// Table names as they exist in the Airtable base. The base mixes Croatian
// and English names; they are part of the schema, not translatable.
const (
	tableLeagues   = "Kategorija"
	tableSports    = "Sport"
	tableTeams     = "Momčadi"
	tableMatches   = "Događanje"
	tableLocations = "Lokacije"
)

// recordEnvelope is one Airtable row. Field values keep their wire-level
// types; the typed getters below coerce them per column.
type recordEnvelope struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listEnvelope struct {
	Records []recordEnvelope `json:"records"`
	Offset  string           `json:"offset"`
}

type fieldsEnvelope struct {
	Fields map[string]any `json:"fields"`
}

func getString(fields map[string]any, key string) string {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getStringSlice(fields map[string]any, key string) []string {
	raw, ok := fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		value, ok := item.(string)
		if !ok {
			continue
		}
		out = append(out, value)
	}
	return out
}

func getInt(fields map[string]any, key string) int {
	switch value := fields[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	default:
		return 0
	}
}

// getIntPtr distinguishes an absent score column from a recorded zero.
func getIntPtr(fields map[string]any, key string) *int {
	if _, ok := fields[key]; !ok {
		return nil
	}
	switch value := fields[key].(type) {
	case float64:
		v := int(value)
		return &v
	case int:
		v := value
		return &v
	case int64:
		v := int(value)
		return &v
	default:
		return nil
	}
}

func getCollaborator(fields map[string]any, key string) league.Assignee {
	raw, ok := fields[key].(map[string]any)
	if !ok {
		return league.Assignee{}
	}
	return league.Assignee{
		ID:    getString(raw, "id"),
		Email: getString(raw, "email"),
		Name:  getString(raw, "name"),
	}
}

type attachment struct {
	URL      string
	Filename string
	Size     int64
	Type     string
}

func getAttachments(fields map[string]any, key string) []attachment {
	raw, ok := fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]attachment, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, attachment{
			URL:      getString(entry, "url"),
			Filename: getString(entry, "filename"),
			Size:     int64(getInt(entry, "size")),
			Type:     getString(entry, "type"),
		})
	}
	return out
}

func mapLeagueRecord(rec recordEnvelope) league.League {
	f := rec.Fields
	return league.League{
		ID:         rec.ID,
		Name:       getString(f, "Name"),
		Sport:      getStringSlice(f, "Sport"),
		Notes:      getString(f, "Notes"),
		Assignee:   getCollaborator(f, "Assignee"),
		LeagueType: getString(f, "LeagueType"),
		Status:     getString(f, "Status"),
		Teams:      getStringSlice(f, "Momčadi"),
		StartDate:  datefmt.FormatDisplay(getString(f, "StartDate")),
		EndDate:    datefmt.FormatDisplay(getString(f, "EndDate")),
	}
}

// buildLeagueFields renders a draft as Airtable columns. Dates go out in the
// ISO form the backend stores; display formatting happens only on reads.
func buildLeagueFields(draft league.Draft) map[string]any {
	fields := map[string]any{
		"Name":       draft.Name,
		"Sport":      draft.Sport,
		"Notes":      draft.Notes,
		"Status":     draft.Status,
		"LeagueType": draft.LeagueType,
		"StartDate":  draft.StartDate,
		"EndDate":    draft.EndDate,
	}
	if draft.Assignee != nil {
		fields["Assignee"] = map[string]any{
			"id":    draft.Assignee.ID,
			"email": draft.Assignee.Email,
			"name":  draft.Assignee.Name,
		}
	}
	return fields
}

func mapSportRecord(rec recordEnvelope) sport.Sport {
	f := rec.Fields
	return sport.Sport{
		ID:   rec.ID,
		Name: getString(f, "Sport Name"),
		Icon: getString(f, "Icons"),
	}
}

func mapTeamRecord(rec recordEnvelope) team.Team {
	f := rec.Fields
	logos := getAttachments(f, "Team Logo")
	logo := make([]team.Attachment, 0, len(logos))
	for _, item := range logos {
		logo = append(logo, team.Attachment(item))
	}
	return team.Team{
		ID:       rec.ID,
		Name:     getString(f, "Team Name"),
		Logo:     logo,
		Category: getStringSlice(f, "Kategorija"),
		Address:  getString(f, "Address"),
		Website:  getString(f, "Website"),
		Sport:    getStringSlice(f, "Sport"),
		Wins:     getInt(f, "Wins"),
		Losses:   getInt(f, "Losses"),
		Draws:    getInt(f, "Draws"),
		Points:   getInt(f, "Total Points"),
	}
}

func mapMatchRecord(rec recordEnvelope) match.Match {
	f := rec.Fields
	return match.Match{
		ID:          rec.ID,
		MatchTime:   getString(f, "Match Time"),
		Sport:       getStringSlice(f, "Sport"),
		League:      getStringSlice(f, "Kategorija"),
		MatchDate:   datefmt.FormatDisplay(getString(f, "Match Date")),
		Location:    getStringSlice(f, "Location"),
		HomeTeam:    getStringSlice(f, "Home Team"),
		AwayTeam:    getStringSlice(f, "Away Team"),
		HomeScore:   getIntPtr(f, "Home Team Score"),
		AwayScore:   getIntPtr(f, "Away Team Score"),
		Result:      getString(f, "Match Result"),
		Officials:   getStringSlice(f, "Officials"),
		Statistics:  getStringSlice(f, "Statistics"),
		Tournaments: getStringSlice(f, "Tournaments"),
	}
}

func buildMatchFields(draft match.Draft) map[string]any {
	fields := map[string]any{
		"Match Time": draft.MatchTime,
		"Match Date": draft.MatchDate,
		"Home Team":  draft.HomeTeam,
		"Away Team":  draft.AwayTeam,
	}
	if len(draft.Sport) > 0 {
		fields["Sport"] = draft.Sport
	}
	if len(draft.League) > 0 {
		fields["Kategorija"] = draft.League
	}
	if len(draft.Location) > 0 {
		fields["Location"] = draft.Location
	}
	if draft.HomeScore != nil {
		fields["Home Team Score"] = *draft.HomeScore
	}
	if draft.AwayScore != nil {
		fields["Away Team Score"] = *draft.AwayScore
	}
	if draft.Result != "" {
		fields["Match Result"] = draft.Result
	}
	if len(draft.Officials) > 0 {
		fields["Officials"] = draft.Officials
	}
	if len(draft.Statistics) > 0 {
		fields["Statistics"] = draft.Statistics
	}
	if len(draft.Tournaments) > 0 {
		fields["Tournaments"] = draft.Tournaments
	}
	return fields
}

func mapLocationRecord(rec recordEnvelope) location.Location {
	f := rec.Fields
	photos := getAttachments(f, "Photo")
	photo := make([]location.Photo, 0, len(photos))
	for _, item := range photos {
		photo = append(photo, location.Photo(item))
	}
	return location.Location{
		ID:                rec.ID,
		VenueName:         getString(f, "Venue Name"),
		Address:           getString(f, "Address"),
		Capacity:          getInt(f, "Capacity"),
		Facilities:        getStringSlice(f, "Facilities"),
		Photo:             photo,
		MatchesHosted:     getStringSlice(f, "Matches Hosted"),
		TournamentsHosted: getStringSlice(f, "Tournaments Hosted"),
		Sport:             getStringSlice(f, "Sport"),
	}
}

func buildLocationFields(draft location.Draft) map[string]any {
	fields := map[string]any{
		"Venue Name": draft.VenueName,
		"Address":    draft.Address,
	}
	if draft.Capacity > 0 {
		fields["Capacity"] = draft.Capacity
	}
	if len(draft.Facilities) > 0 {
		fields["Facilities"] = draft.Facilities
	}
	if len(draft.Photo) > 0 {
		photos := make([]map[string]any, 0, len(draft.Photo))
		for _, item := range draft.Photo {
			photos = append(photos, map[string]any{"url": item.URL, "filename": item.Filename})
		}
		fields["Photo"] = photos
	}
	if len(draft.MatchesHosted) > 0 {
		fields["Matches Hosted"] = draft.MatchesHosted
	}
	if len(draft.TournamentsHosted) > 0 {
		fields["Tournaments Hosted"] = draft.TournamentsHosted
	}
	if len(draft.Sport) > 0 {
		fields["Sport"] = draft.Sport
	}
	return fields
}
