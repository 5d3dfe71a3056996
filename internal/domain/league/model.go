package league

import "fmt"

// Assignee is the Airtable collaborator responsible for a league.
type Assignee struct {
	ID    string
	Email string
	Name  string
}

// League is a competition category (the Airtable "Kategorija" table).
// StartDate and EndDate are already rendered in display format.
type League struct {
	ID         string
	Name       string
	Sport      []string
	Notes      string
	Assignee   Assignee
	LeagueType string
	Status     string
	Teams      []string
	StartDate  string
	EndDate    string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Draft carries the writable league fields. Dates are ISO yyyy-mm-dd as the
// backend stores them. Status and LeagueType are open sets; new values the
// backend introduces must flow through untouched.
type Draft struct {
	Name       string
	Sport      []string
	Notes      string
	Assignee   *Assignee
	LeagueType string
	Status     string
	StartDate  string
	EndDate    string
}

func (d Draft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if len(d.Sport) == 0 {
		return fmt.Errorf("league sport is required")
	}
	if d.Status == "" {
		return fmt.Errorf("league status is required")
	}

	return nil
}
