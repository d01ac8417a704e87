package member

import "context"

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	Save(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	DepartmentCounts(ctx context.Context) ([]DepartmentCount, error)
	CountEvents(ctx context.Context, memberID uint) (int64, error)
}
