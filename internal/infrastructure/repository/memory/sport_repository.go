package memory

import (
	"context"
	"sync"

	"github.com/mystixxx/altersport/internal/domain/sport"
)

type SportRepository struct {
	mu     sync.RWMutex
	sports []sport.Sport
}

func NewSportRepository(sports []sport.Sport) *SportRepository {
	return &SportRepository{sports: append([]sport.Sport(nil), sports...)}
}

func (r *SportRepository) List(_ context.Context) ([]sport.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sport.Sport, 0, len(r.sports))
	out = append(out, r.sports...)

	return out, nil
}

func (r *SportRepository) GetByID(_ context.Context, id string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.sports {
		if item.ID == id {
			return item, true, nil
		}
	}

	return sport.Sport{}, false, nil
}
