package memory

import (
	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
)

// Fixtures is the demo dataset served when no Airtable credentials are
// configured. Record ids follow the Airtable rec-prefix convention so the
// rest of the stack cannot tell the two backends apart.
type Fixtures struct {
	Leagues   []league.League
	Sports    []sport.Sport
	Teams     []team.Team
	Matches   []match.Match
	Locations []location.Location
}

func intPtr(v int) *int { return &v }

// SeedFixtures returns a small consistent dataset: two sports, three
// league categories, six teams, a mix of played and upcoming matches and
// two venues. Cross-record links all resolve within the set.
func SeedFixtures() Fixtures {
	return Fixtures{
		Sports: []sport.Sport{
			{ID: "recsport0nogomet", Name: "Nogomet", Icon: "/icons/football.svg"},
			{ID: "recsport1kosarka", Name: "Košarka", Icon: "/icons/basketball.svg"},
		},
		Leagues: []league.League{
			{
				ID:         "recliga0zagreb01",
				Name:       "Zagrebačka rekreativna liga",
				Sport:      []string{"recsport0nogomet"},
				Notes:      "Jesenski krug, mali nogomet",
				Assignee:   league.Assignee{ID: "usr001", Email: "ivana@altersport.hr", Name: "Ivana Horvat"},
				LeagueType: "Liga",
				Status:     "In progress",
				Teams:      []string{"recteam0dinamo00", "recteam1trnje000", "recteam2medvesc0"},
				StartDate:  "01.09.2025.",
				EndDate:    "15.12.2025.",
			},
			{
				ID:         "recliga1split002",
				Name:       "Splitska amaterska liga",
				Sport:      []string{"recsport0nogomet"},
				Notes:      "",
				Assignee:   league.Assignee{ID: "usr002", Email: "marko@altersport.hr", Name: "Marko Kovač"},
				LeagueType: "Liga",
				Status:     "Todo",
				Teams:      []string{"recteam3spinut00", "recteam4bacvice0"},
				StartDate:  "01.10.2025.",
				EndDate:    "20.12.2025.",
			},
			{
				ID:         "recliga2kosarka3",
				Name:       "Gradska košarkaška liga",
				Sport:      []string{"recsport1kosarka"},
				Notes:      "Igra se nedjeljom",
				Assignee:   league.Assignee{ID: "usr001", Email: "ivana@altersport.hr", Name: "Ivana Horvat"},
				LeagueType: "Turnir",
				Status:     "Done",
				Teams:      []string{"recteam5tresnja0", "recteam6sava0000"},
				StartDate:  "15.05.2025.",
				EndDate:    "30.06.2025.",
			},
		},
		Teams: []team.Team{
			{
				ID:       "recteam0dinamo00",
				Name:     "NK Kvart",
				Logo:     []team.Attachment{{URL: "https://cdn.altersport.hr/logos/kvart.png", Filename: "kvart.png", Type: "image/png"}},
				Category: []string{"recliga0zagreb01"},
				Address:  "Ulica grada Vukovara 10, Zagreb",
				Website:  "https://nk-kvart.hr",
				Sport:    []string{"recsport0nogomet"},
				Wins:     4, Losses: 1, Draws: 1, Points: 13,
			},
			{
				ID:       "recteam1trnje000",
				Name:     "MNK Trnje",
				Category: []string{"recliga0zagreb01"},
				Address:  "Trnjanska cesta 5, Zagreb",
				Sport:    []string{"recsport0nogomet"},
				Wins:     3, Losses: 2, Draws: 1, Points: 10,
			},
			{
				ID:       "recteam2medvesc0",
				Name:     "NK Medveščak",
				Logo:     []team.Attachment{{URL: "https://cdn.altersport.hr/logos/medvescak.png", Filename: "medvescak.png", Type: "image/png"}},
				Category: []string{"recliga0zagreb01"},
				Address:  "Medveščak 20, Zagreb",
				Sport:    []string{"recsport0nogomet"},
				Wins:     2, Losses: 3, Draws: 1, Points: 7,
			},
			{
				ID:       "recteam3spinut00",
				Name:     "MNK Spinut",
				Category: []string{"recliga1split002"},
				Address:  "Spinutska 30, Split",
				Sport:    []string{"recsport0nogomet"},
			},
			{
				ID:       "recteam4bacvice0",
				Name:     "NK Bačvice",
				Category: []string{"recliga1split002"},
				Address:  "Šetalište Bačvice 2, Split",
				Sport:    []string{"recsport0nogomet"},
			},
			{
				ID:       "recteam5tresnja0",
				Name:     "KK Trešnjevka",
				Category: []string{"recliga2kosarka3"},
				Address:  "Trešnjevački trg 1, Zagreb",
				Sport:    []string{"recsport1kosarka"},
				Wins:     6, Losses: 2, Draws: 0, Points: 12,
			},
			{
				ID:       "recteam6sava0000",
				Name:     "KK Sava",
				Category: []string{"recliga2kosarka3"},
				Address:  "Savska cesta 25, Zagreb",
				Sport:    []string{"recsport1kosarka"},
				Wins:     5, Losses: 3, Draws: 0, Points: 10,
			},
		},
		Matches: []match.Match{
			{
				ID:        "recmatch0past001",
				MatchTime: "19:00",
				Sport:     []string{"recsport0nogomet"},
				League:    []string{"recliga0zagreb01"},
				MatchDate: "07.09.2025.",
				Location:  []string{"recloc0jarun0000"},
				HomeTeam:  []string{"recteam0dinamo00"},
				AwayTeam:  []string{"recteam1trnje000"},
				HomeScore: intPtr(3),
				AwayScore: intPtr(1),
				Result:    "3:1",
			},
			{
				ID:        "recmatch1past002",
				MatchTime: "20:30",
				Sport:     []string{"recsport0nogomet"},
				League:    []string{"recliga0zagreb01"},
				MatchDate: "14.09.2025.",
				Location:  []string{"recloc0jarun0000"},
				HomeTeam:  []string{"recteam2medvesc0"},
				AwayTeam:  []string{"recteam0dinamo00"},
				HomeScore: intPtr(2),
				AwayScore: intPtr(2),
				Result:    "2:2",
			},
			{
				ID:        "recmatch2next001",
				MatchTime: "18:30",
				Sport:     []string{"recsport0nogomet"},
				League:    []string{"recliga0zagreb01"},
				MatchDate: "05.10.2025.",
				Location:  []string{"recloc1poljud000"},
				HomeTeam:  []string{"recteam1trnje000"},
				AwayTeam:  []string{"recteam2medvesc0"},
			},
			{
				ID:        "recmatch3next002",
				MatchTime: "17:00",
				Sport:     []string{"recsport1kosarka"},
				League:    []string{"recliga2kosarka3"},
				MatchDate: "12.10.2025.",
				Location:  []string{"recloc1poljud000"},
				HomeTeam:  []string{"recteam5tresnja0"},
				AwayTeam:  []string{"recteam6sava0000"},
			},
		},
		Locations: []location.Location{
			{
				ID:            "recloc0jarun0000",
				VenueName:     "ŠRC Jarun",
				Address:       "Aleja Matije Ljubeka 1, Zagreb",
				Capacity:      500,
				Facilities:    []string{"Svlačionice", "Parking", "Tribine"},
				Photo:         []location.Photo{{URL: "https://cdn.altersport.hr/venues/jarun.jpg", Filename: "jarun.jpg", Type: "image/jpeg"}},
				MatchesHosted: []string{"recmatch0past001", "recmatch1past002"},
				Sport:         []string{"recsport0nogomet"},
			},
			{
				ID:            "recloc1poljud000",
				VenueName:     "Dvorana Poljud",
				Address:       "Osmih mediteranskih igara 2, Split",
				Capacity:      1200,
				Facilities:    []string{"Svlačionice", "Kafić"},
				MatchesHosted: []string{"recmatch2next001", "recmatch3next002"},
				Sport:         []string{"recsport0nogomet", "recsport1kosarka"},
			},
		},
	}
}
