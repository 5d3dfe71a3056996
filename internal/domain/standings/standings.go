// Package standings derives league tables from team win/loss records.
package standings

import (
	"sort"

	"github.com/mystixxx/altersport/internal/domain/team"
)

// Highlight classes for rendered rows. At most two rows are visually
// distinguished; every other row renders plain.
const (
	HighlightNone      = 0
	HighlightPrimary   = 1
	HighlightSecondary = 2
)

// Row is one line of a derived league table.
type Row struct {
	Position  int
	Team      team.Team
	Played    int
	Highlight int
}

// Derive builds the table: teams ordered by points descending with ties
// keeping their input order, positions numbered from one, played counted as
// wins+losses+draws. The first id in highlightIDs gets the primary class,
// any other listed id the secondary class.
func Derive(teams []team.Team, highlightIDs []string) []Row {
	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, Row{
			Team:      t,
			Played:    t.Played(),
			Highlight: highlightClass(t.ID, highlightIDs),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Team.Points > rows[j].Team.Points
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}

func highlightClass(teamID string, highlightIDs []string) int {
	for i, id := range highlightIDs {
		if id != teamID {
			continue
		}
		if i == 0 {
			return HighlightPrimary
		}
		return HighlightSecondary
	}
	return HighlightNone
}
