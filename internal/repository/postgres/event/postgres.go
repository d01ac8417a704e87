package event

import (
	"context"
	"errors"
	"time"

	eventdomain "qd-calendar-go/internal/domain/event"
	memberdomain "qd-calendar-go/internal/domain/member"
	"gorm.io/gorm"
)

const listOrder = "event_date ASC, start_time ASC NULLS FIRST, id ASC"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(eventdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, record *eventdomain.Event) error {
	return r.db.WithContext(ctx).Omit("Creator").Create(record).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*eventdomain.Event, error) {
	var record eventdomain.Event
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrEventNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Save(ctx context.Context, record *eventdomain.Event) error {
	return r.db.WithContext(ctx).Omit("Creator").Save(record).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&eventdomain.Event{}, "id = ?", id).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter eventdomain.ListFilter) ([]eventdomain.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventdomain.Event{})
	if filter.StartDate != nil {
		q = q.Where("event_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("event_date <= ?", *filter.EndDate)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	var records []eventdomain.Event
	if err := q.Order(listOrder).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) Upcoming(ctx context.Context, from, to time.Time) ([]eventdomain.Event, error) {
	var records []eventdomain.Event
	err := r.db.WithContext(ctx).
		Where("event_date >= ? AND event_date <= ? AND status <> ?", from, to, eventdomain.StatusCancelled).
		Order(listOrder).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListParticipants(ctx context.Context, eventID uint) ([]eventdomain.Participant, error) {
	var rows []eventdomain.Participant
	err := r.db.WithContext(ctx).
		Table("members").
		Select("members.id, members.name").
		Joins("JOIN event_members ON event_members.member_id = members.id").
		Where("event_members.event_id = ?", eventID).
		Order("members.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) AddMembers(ctx context.Context, eventID uint, memberIDs []uint) error {
	if len(memberIDs) == 0 {
		return nil
	}
	rows := make([]eventdomain.EventMember, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		rows = append(rows, eventdomain.EventMember{EventID: eventID, MemberID: memberID})
	}
	return r.db.WithContext(ctx).Omit("Event", "Member").Create(&rows).Error
}

func (r *PostgresRepository) ReplaceMembers(ctx context.Context, eventID uint, memberIDs []uint) error {
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&eventdomain.EventMember{}).Error; err != nil {
		return err
	}
	return r.AddMembers(ctx, eventID, memberIDs)
}

func (r *PostgresRepository) FilterExistingMembers(ctx context.Context, memberIDs []uint) ([]uint, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var existing []uint
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id IN ?", memberIDs).
		Pluck("id", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *PostgresRepository) CreatorUsername(ctx context.Context, userID uint) (*string, error) {
	var rows []string
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Limit(1).
		Pluck("username", &rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
