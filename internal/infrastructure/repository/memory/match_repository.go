package memory

import (
	"context"
	"sync"

	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/platform/datefmt"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	return &MatchRepository{matches: append([]match.Match(nil), matches...)}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	out = append(out, r.matches...)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.matches {
		if item.ID == id {
			return item, true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) Create(_ context.Context, draft match.Draft) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := match.Match{
		ID:          newRecordID(),
		MatchTime:   draft.MatchTime,
		Sport:       append([]string(nil), draft.Sport...),
		League:      append([]string(nil), draft.League...),
		MatchDate:   datefmt.FormatDisplay(draft.MatchDate),
		Location:    append([]string(nil), draft.Location...),
		HomeTeam:    append([]string(nil), draft.HomeTeam...),
		AwayTeam:    append([]string(nil), draft.AwayTeam...),
		HomeScore:   draft.HomeScore,
		AwayScore:   draft.AwayScore,
		Result:      draft.Result,
		Officials:   append([]string(nil), draft.Officials...),
		Statistics:  append([]string(nil), draft.Statistics...),
		Tournaments: append([]string(nil), draft.Tournaments...),
	}
	r.matches = append(r.matches, created)

	return created, nil
}
