package member

import (
	"context"
	"errors"

	memberdomain "qd-calendar-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*memberdomain.Member, error) {
	var record memberdomain.Member
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Save(ctx context.Context, record *memberdomain.Member) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", id).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter memberdomain.ListFilter) ([]memberdomain.Member, int64, error) {
	q := r.db.WithContext(ctx).Model(&memberdomain.Member{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			r.db.Where("name ILIKE ?", pattern).
				Or("department ILIKE ?", pattern).
				Or("position ILIKE ?", pattern),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []memberdomain.Member
	err := q.Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *PostgresRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("is_active = ?", active).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DepartmentCounts(ctx context.Context) ([]memberdomain.DepartmentCount, error) {
	var rows []memberdomain.DepartmentCount
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Select("department AS name, COUNT(id) AS count").
		Where("is_active = ? AND department IS NOT NULL", true).
		Group("department").
		Order("count DESC, department ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CountEvents(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("event_members").
		Where("member_id = ?", memberID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
