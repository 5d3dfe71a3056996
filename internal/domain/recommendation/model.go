package recommendation

import "fmt"

// PlaceholderLogo is shown when neither the event payload nor the catalog
// has a logo for a team.
const PlaceholderLogo = "/placeholder-logo.png"

// UpcomingEvent is one event suggested by the recommendation backend.
// Team, location and league ids reference catalog records and may fail to
// resolve. FromAPI distinguishes backend-sourced events from synthesized
// ones.
type UpcomingEvent struct {
	EventID      string
	EventType    string
	EventDate    string
	SportID      string
	HomeTeamID   string
	HomeTeamLogo string
	AwayTeamID   string
	AwayTeamLogo string
	LocationID   string
	LeagueIDs    []string
	FromAPI      bool
}

// Payload is the homepage recommendation response for one user.
type Payload struct {
	UserID           string
	FavoriteSports   []string
	UpcomingEvents   []UpcomingEvent
	RecommendedTeams []string
}

// CardTeam is one side of a rendered match card.
type CardTeam struct {
	Name    string
	LogoURL string
}

// MatchCard is the enriched, display-ready form of an upcoming event.
type MatchCard struct {
	ID         string
	Sport      string
	HomeTeam   CardTeam
	AwayTeam   CardTeam
	Venue      string
	Time       string
	Date       string
	IsFavorite bool
	Variant    string
}

// QuizAnswers is the onboarding quiz submission forwarded to the
// recommendation backend. Enum values are open sets owned by that backend.
type QuizAnswers struct {
	UserName       string
	Age            string
	GroupStyle     string
	Activities     []string
	City           string
	District       string
	SportInterests []string
}

func (a QuizAnswers) Validate() error {
	if a.Age == "" {
		return fmt.Errorf("quiz age group is required")
	}
	if a.GroupStyle == "" {
		return fmt.Errorf("quiz group style is required")
	}
	if len(a.Activities) == 0 {
		return fmt.Errorf("at least one quiz activity is required")
	}

	return nil
}

// QuizResult is what the backend suggests after a quiz submission.
type QuizResult struct {
	RecommendedSport string
	RecommendedTeams []string
}
