package location

import "context"

type Repository interface {
	List(ctx context.Context) ([]Location, error)
	GetByID(ctx context.Context, id string) (Location, bool, error)
	Create(ctx context.Context, draft Draft) (Location, error)
	Update(ctx context.Context, id string, draft Draft) (Location, error)
}
