package analytics

import (
	"context"
	"time"

	analyticsdomain "qd-calendar-go/internal/domain/analytics"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const windowCond = "e.event_date >= ? AND e.event_date < ?"

func (r *PostgresRepository) CountEvents(ctx context.Context, w analyticsdomain.Window) (int64, error) {
	return r.scanCount(ctx, "SELECT COUNT(*) AS count FROM events e WHERE "+windowCond, w.Start, w.End)
}

func (r *PostgresRepository) CountCompletedEvents(ctx context.Context, w analyticsdomain.Window) (int64, error) {
	query := "SELECT COUNT(*) AS count FROM events e WHERE " + windowCond + " AND e.status = 'completed'"
	return r.scanCount(ctx, query, w.Start, w.End)
}

func (r *PostgresRepository) CountParticipations(ctx context.Context, w analyticsdomain.Window) (int64, error) {
	query := "SELECT COUNT(em.member_id) AS count FROM event_members em " +
		"JOIN events e ON e.id = em.event_id WHERE " + windowCond
	return r.scanCount(ctx, query, w.Start, w.End)
}

func (r *PostgresRepository) CountUniqueParticipants(ctx context.Context, w analyticsdomain.Window) (int64, error) {
	query := "SELECT COUNT(DISTINCT em.member_id) AS count FROM event_members em " +
		"JOIN events e ON e.id = em.event_id WHERE " + windowCond
	return r.scanCount(ctx, query, w.Start, w.End)
}

func (r *PostgresRepository) StatusCounts(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.StatusCount, error) {
	query := "SELECT e.status, COUNT(*) AS count FROM events e WHERE " + windowCond +
		" GROUP BY e.status ORDER BY count DESC, e.status ASC"

	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]analyticsdomain.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, analyticsdomain.StatusCount{Status: row.Status, Count: row.Count})
	}
	return counts, nil
}

func (r *PostgresRepository) PriorityCounts(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.PriorityCount, error) {
	query := "SELECT e.priority, COUNT(*) AS count FROM events e WHERE " + windowCond +
		" GROUP BY e.priority ORDER BY count DESC, e.priority ASC"

	var rows []struct {
		Priority string `gorm:"column:priority"`
		Count    int64  `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]analyticsdomain.PriorityCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, analyticsdomain.PriorityCount{Priority: row.Priority, Count: row.Count})
	}
	return counts, nil
}

func (r *PostgresRepository) DailyCounts(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.DailyCount, error) {
	// Days without events are simply absent from the result, never zero-filled.
	query := "SELECT e.event_date AS date, COUNT(*) AS count FROM events e WHERE " + windowCond +
		" GROUP BY e.event_date ORDER BY e.event_date ASC"

	var rows []struct {
		Date  time.Time `gorm:"column:date"`
		Count int64     `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]analyticsdomain.DailyCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, analyticsdomain.DailyCount{Date: row.Date, Count: row.Count})
	}
	return counts, nil
}

func (r *PostgresRepository) EventStats(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.EventStat, error) {
	query := "SELECT e.id, e.title, e.event_date, e.start_time::text AS start_time, e.status, e.priority, " +
		"COUNT(em.member_id) AS participant_count, u.username AS creator_name " +
		"FROM events e " +
		"LEFT JOIN event_members em ON em.event_id = e.id " +
		"LEFT JOIN users u ON u.id = e.created_by " +
		"WHERE " + windowCond + " " +
		"GROUP BY e.id, e.title, e.event_date, e.start_time, e.status, e.priority, u.username " +
		"ORDER BY e.event_date DESC, e.start_time ASC NULLS FIRST, e.id ASC"

	var rows []struct {
		ID               uint      `gorm:"column:id"`
		Title            string    `gorm:"column:title"`
		EventDate        time.Time `gorm:"column:event_date"`
		StartTime        *string   `gorm:"column:start_time"`
		Status           string    `gorm:"column:status"`
		Priority         string    `gorm:"column:priority"`
		ParticipantCount int64     `gorm:"column:participant_count"`
		CreatorName      *string   `gorm:"column:creator_name"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]analyticsdomain.EventStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analyticsdomain.EventStat{
			ID:               row.ID,
			Title:            row.Title,
			EventDate:        row.EventDate,
			StartTime:        row.StartTime,
			Status:           row.Status,
			Priority:         row.Priority,
			ParticipantCount: row.ParticipantCount,
			CreatorName:      row.CreatorName,
		})
	}
	return stats, nil
}

func (r *PostgresRepository) MemberStats(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.MemberStat, error) {
	query := "SELECT m.id AS member_id, m.name, m.department, COUNT(em.event_id) AS event_count " +
		"FROM members m " +
		"JOIN event_members em ON em.member_id = m.id " +
		"JOIN events e ON e.id = em.event_id " +
		"WHERE " + windowCond + " " +
		"GROUP BY m.id, m.name, m.department " +
		"ORDER BY event_count DESC, m.id ASC"

	var rows []struct {
		MemberID   uint    `gorm:"column:member_id"`
		Name       string  `gorm:"column:name"`
		Department *string `gorm:"column:department"`
		EventCount int64   `gorm:"column:event_count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]analyticsdomain.MemberStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analyticsdomain.MemberStat{
			MemberID:   row.MemberID,
			Name:       row.Name,
			Department: row.Department,
			EventCount: row.EventCount,
		})
	}
	return stats, nil
}

func (r *PostgresRepository) DepartmentStats(ctx context.Context, w analyticsdomain.Window) ([]analyticsdomain.DepartmentStat, error) {
	query := "SELECT m.department, COUNT(DISTINCT m.id) AS member_count, COUNT(em.event_id) AS event_count " +
		"FROM members m " +
		"JOIN event_members em ON em.member_id = m.id " +
		"JOIN events e ON e.id = em.event_id " +
		"WHERE " + windowCond + " AND m.department IS NOT NULL " +
		"GROUP BY m.department " +
		"ORDER BY event_count DESC, m.department ASC"

	var rows []struct {
		Department  string `gorm:"column:department"`
		MemberCount int64  `gorm:"column:member_count"`
		EventCount  int64  `gorm:"column:event_count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, w.Start, w.End).Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]analyticsdomain.DepartmentStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analyticsdomain.DepartmentStat{
			Department:  row.Department,
			MemberCount: row.MemberCount,
			EventCount:  row.EventCount,
		})
	}
	return stats, nil
}

func (r *PostgresRepository) scanCount(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var row struct {
		Count int64 `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Count, nil
}
