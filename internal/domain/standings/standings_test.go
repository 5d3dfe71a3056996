package standings

import (
	"testing"

	"github.com/mystixxx/altersport/internal/domain/team"
)

func TestDerive_OrderAndPositions(t *testing.T) {
	teams := []team.Team{
		{ID: "a", Name: "A", Wins: 3, Draws: 1, Losses: 0, Points: 10},
		{ID: "b", Name: "B", Wins: 5, Draws: 0, Losses: 1, Points: 15},
		{ID: "c", Name: "C", Wins: 2, Draws: 4, Losses: 2, Points: 10},
	}

	rows := Derive(teams, nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantOrder := []string{"b", "a", "c"}
	for i, want := range wantOrder {
		if rows[i].Team.ID != want {
			t.Fatalf("row %d = %s, want %s (ties must keep input order)", i, rows[i].Team.ID, want)
		}
		if rows[i].Position != i+1 {
			t.Fatalf("row %d position = %d, want %d", i, rows[i].Position, i+1)
		}
	}
}

func TestDerive_PlayedCountsAllResults(t *testing.T) {
	rows := Derive([]team.Team{{ID: "a", Wins: 2, Losses: 3, Draws: 1}}, nil)
	if rows[0].Played != 6 {
		t.Fatalf("played = %d, want 6", rows[0].Played)
	}
}

func TestDerive_HighlightClasses(t *testing.T) {
	teams := []team.Team{
		{ID: "a", Points: 3},
		{ID: "b", Points: 2},
		{ID: "c", Points: 1},
	}

	rows := Derive(teams, []string{"b", "c"})

	byID := map[string]Row{}
	for _, r := range rows {
		byID[r.Team.ID] = r
	}

	if byID["b"].Highlight != HighlightPrimary {
		t.Fatalf("first highlighted id should be primary, got %d", byID["b"].Highlight)
	}
	if byID["c"].Highlight != HighlightSecondary {
		t.Fatalf("second highlighted id should be secondary, got %d", byID["c"].Highlight)
	}
	if byID["a"].Highlight != HighlightNone {
		t.Fatalf("unlisted team should be plain, got %d", byID["a"].Highlight)
	}
}

func TestDerive_EmptyInput(t *testing.T) {
	if rows := Derive(nil, nil); len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}
