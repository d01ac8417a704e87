package user

import (
	"context"
	"errors"

	userdomain "qd-calendar-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *userdomain.User) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*userdomain.User, error) {
	var record userdomain.User
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	var record userdomain.User
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *PostgresRepository) HasRole(ctx context.Context, role string) (bool, error) {
	return r.exists(ctx, "role = ?", role)
}

func (r *PostgresRepository) exists(ctx context.Context, cond string, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where(cond, value).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
