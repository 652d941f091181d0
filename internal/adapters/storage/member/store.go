package member

import (
	"context"

	domain "mikrobot/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	// List returns the full roster ordered by id.
	List(ctx context.Context) ([]domain.Member, error)
	Create(ctx context.Context, m domain.Member) (domain.Member, error)
	Update(ctx context.Context, m domain.Member) error
	Delete(ctx context.Context, id int64) error
}
