package match

import "fmt"

// Match is one row of the Airtable "Događanje" table. Linked records
// (teams, league, location) arrive as record id slices; MatchDate is
// rendered in display format on reads.
type Match struct {
	ID          string
	MatchTime   string
	Sport       []string
	League      []string
	MatchDate   string
	Location    []string
	HomeTeam    []string
	AwayTeam    []string
	HomeScore   *int
	AwayScore   *int
	Result      string
	Officials   []string
	Statistics  []string
	Tournaments []string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}

	return nil
}

// IsPast reports whether the match has finished. A match counts as played
// once both scores are recorded.
func (m Match) IsPast() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// InLeague reports whether the match belongs to a league category.
func (m Match) InLeague(leagueID string) bool {
	for _, id := range m.League {
		if id == leagueID {
			return true
		}
	}
	return false
}

// Involves reports whether a team plays in this match on either side.
func (m Match) Involves(teamID string) bool {
	for _, id := range m.HomeTeam {
		if id == teamID {
			return true
		}
	}
	for _, id := range m.AwayTeam {
		if id == teamID {
			return true
		}
	}
	return false
}

// Draft carries the writable match fields; MatchDate is ISO yyyy-mm-dd.
type Draft struct {
	MatchTime   string
	Sport       []string
	League      []string
	MatchDate   string
	Location    []string
	HomeTeam    []string
	AwayTeam    []string
	HomeScore   *int
	AwayScore   *int
	Result      string
	Officials   []string
	Statistics  []string
	Tournaments []string
}

func (d Draft) Validate() error {
	if d.MatchTime == "" {
		return fmt.Errorf("match time is required")
	}
	if d.MatchDate == "" {
		return fmt.Errorf("match date is required")
	}
	if len(d.HomeTeam) == 0 || len(d.AwayTeam) == 0 {
		return fmt.Errorf("both teams are required")
	}

	return nil
}
