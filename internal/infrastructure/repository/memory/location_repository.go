package memory

import (
	"context"
	"sync"

	"github.com/mystixxx/altersport/internal/domain/location"
)

type LocationRepository struct {
	mu        sync.RWMutex
	locations []location.Location
}

func NewLocationRepository(locations []location.Location) *LocationRepository {
	return &LocationRepository{locations: append([]location.Location(nil), locations...)}
}

func (r *LocationRepository) List(_ context.Context) ([]location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]location.Location, 0, len(r.locations))
	out = append(out, r.locations...)

	return out, nil
}

func (r *LocationRepository) GetByID(_ context.Context, id string) (location.Location, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.locations {
		if item.ID == id {
			return item, true, nil
		}
	}

	return location.Location{}, false, nil
}

func (r *LocationRepository) Create(_ context.Context, draft location.Draft) (location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := locationFromDraft(newRecordID(), draft)
	r.locations = append(r.locations, created)

	return created, nil
}

func (r *LocationRepository) Update(_ context.Context, id string, draft location.Draft) (location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.locations {
		if r.locations[idx].ID != id {
			continue
		}
		updated := locationFromDraft(id, draft)
		r.locations[idx] = updated
		return updated, nil
	}

	return location.Location{}, errRecordMissing("location", id)
}

func locationFromDraft(id string, draft location.Draft) location.Location {
	return location.Location{
		ID:                id,
		VenueName:         draft.VenueName,
		Address:           draft.Address,
		Capacity:          draft.Capacity,
		Facilities:        append([]string(nil), draft.Facilities...),
		Photo:             append([]location.Photo(nil), draft.Photo...),
		MatchesHosted:     append([]string(nil), draft.MatchesHosted...),
		TournamentsHosted: append([]string(nil), draft.TournamentsHosted...),
		Sport:             append([]string(nil), draft.Sport...),
	}
}
