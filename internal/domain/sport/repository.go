package sport

import "context"

type Repository interface {
	List(ctx context.Context) ([]Sport, error)
	GetByID(ctx context.Context, id string) (Sport, bool, error)
}
