package team

import "fmt"

// Attachment is an Airtable attachment field entry (logos, photos).
type Attachment struct {
	URL      string
	Filename string
	Size     int64
	Type     string
}

// Team is one row of the Airtable "Momčadi" table.
type Team struct {
	ID       string
	Name     string
	Logo     []Attachment
	Category []string
	Address  string
	Website  string
	Sport    []string
	Wins     int
	Losses   int
	Draws    int
	Points   int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Played is the number of finished matches.
func (t Team) Played() int {
	return t.Wins + t.Losses + t.Draws
}

// LogoURL returns the first logo attachment URL, or empty when the team has
// no logo uploaded.
func (t Team) LogoURL() string {
	if len(t.Logo) == 0 {
		return ""
	}
	return t.Logo[0].URL
}

// InCategory reports membership in a league category.
func (t Team) InCategory(categoryID string) bool {
	for _, id := range t.Category {
		if id == categoryID {
			return true
		}
	}
	return false
}

// InSport reports whether the team plays the given sport.
func (t Team) InSport(sportID string) bool {
	for _, id := range t.Sport {
		if id == sportID {
			return true
		}
	}
	return false
}
