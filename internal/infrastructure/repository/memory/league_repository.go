package memory

import (
	"context"
	"sync"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/platform/datefmt"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues []league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	return &LeagueRepository{leagues: append([]league.League(nil), leagues...)}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.leagues))
	out = append(out, r.leagues...)

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.leagues {
		if item.ID == id {
			return item, true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) Create(_ context.Context, draft league.Draft) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := leagueFromDraft(newRecordID(), draft)
	r.leagues = append(r.leagues, created)

	return created, nil
}

func (r *LeagueRepository) Update(_ context.Context, id string, draft league.Draft) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.leagues {
		if r.leagues[idx].ID != id {
			continue
		}
		updated := leagueFromDraft(id, draft)
		updated.Teams = r.leagues[idx].Teams
		r.leagues[idx] = updated
		return updated, nil
	}

	// Airtable creates no row for an unknown id; mirror its update error
	// contract by reporting the miss as a plain error.
	return league.League{}, errRecordMissing("league", id)
}

// leagueFromDraft renders stored ISO dates in display format, matching the
// record gateway's read boundary.
func leagueFromDraft(id string, draft league.Draft) league.League {
	out := league.League{
		ID:         id,
		Name:       draft.Name,
		Sport:      append([]string(nil), draft.Sport...),
		Notes:      draft.Notes,
		LeagueType: draft.LeagueType,
		Status:     draft.Status,
		StartDate:  datefmt.FormatDisplay(draft.StartDate),
		EndDate:    datefmt.FormatDisplay(draft.EndDate),
	}
	if draft.Assignee != nil {
		out.Assignee = *draft.Assignee
	}
	return out
}
