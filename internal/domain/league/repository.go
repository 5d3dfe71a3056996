package league

import "context"

// Repository describes league reads and dashboard writes.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, id string) (League, bool, error)
	Create(ctx context.Context, draft Draft) (League, error)
	Update(ctx context.Context, id string, draft Draft) (League, error)
}
