package event

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"qd-calendar-go/internal/domain/analytics"
)

const upcomingDays = 7

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, input CreateEventInput) (*EventDetails, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.EventDate.IsZero() {
		return nil, fmt.Errorf("event date is required")
	}
	if strings.TrimSpace(input.BackgroundImage) == "" {
		return nil, fmt.Errorf("background image is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, fmt.Errorf("location is required")
	}
	if strings.TrimSpace(input.OrganizerDepartment) == "" {
		return nil, fmt.Errorf("organizer department is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	status := input.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	background := input.BackgroundImage
	location := input.Location
	department := input.OrganizerDepartment

	record := Event{
		Title:                strings.TrimSpace(input.Title),
		Description:          input.Description,
		EventDate:            dateOnly(input.EventDate),
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		BackgroundImage:      &background,
		Priority:             priority,
		Status:               status,
		OrganizerDepartment:  &department,
		ExpectedParticipants: input.ExpectedParticipants,
		Location:             &location,
		CreatedBy:            input.CreatedBy,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Create(ctx, &record); err != nil {
			return err
		}
		if len(input.MemberIDs) == 0 {
			return nil
		}
		ids, err := tx.FilterExistingMembers(ctx, input.MemberIDs)
		if err != nil {
			return err
		}
		return tx.AddMembers(ctx, record.ID, ids)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, record.ID)
}

func (s *Service) Get(ctx context.Context, id uint) (*EventDetails, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, record)
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateEventInput) (*EventDetails, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required")
		}
		record.Title = title
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.EventDate != nil {
		record.EventDate = dateOnly(*input.EventDate)
	}
	if input.StartTime.Set {
		record.StartTime = input.StartTime.Value
	}
	if input.EndTime.Set {
		record.EndTime = input.EndTime.Value
	}
	if input.BackgroundImage != nil {
		record.BackgroundImage = input.BackgroundImage
	}
	if input.Priority != nil {
		if !ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		record.Priority = *input.Priority
	}
	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		record.Status = *input.Status
	}
	if input.OrganizerDepartment != nil {
		record.OrganizerDepartment = input.OrganizerDepartment
	}
	if input.ExpectedParticipants != nil {
		record.ExpectedParticipants = input.ExpectedParticipants
	}
	if input.Location != nil {
		record.Location = input.Location
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Save(ctx, record); err != nil {
			return err
		}
		if input.MemberIDs == nil {
			return nil
		}
		ids, err := tx.FilterExistingMembers(ctx, *input.MemberIDs)
		if err != nil {
			return err
		}
		return tx.ReplaceMembers(ctx, record.ID, ids)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, record.ID)
}

// Delete removes the event and returns the deleted record so the caller can
// clean up its stored poster image.
func (s *Service) Delete(ctx context.Context, id uint) (*Event, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]EventDetails, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	if filter.Priority != "" && !ValidPriority(filter.Priority) {
		return nil, ErrInvalidPriority
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.detailsForAll(ctx, records)
}

// Calendar returns the month's events grouped by day, days sorted ascending.
// Zero year/month default to the current month.
func (s *Service) Calendar(ctx context.Context, year, month int) ([]CalendarDay, error) {
	if year == 0 || month == 0 {
		today := s.now()
		year = today.Year()
		month = int(today.Month())
	}

	window, err := analytics.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	// List bounds are inclusive, the window end is exclusive.
	start := window.Start
	end := window.End.AddDate(0, 0, -1)
	records, err := s.repo.List(ctx, ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]Event)
	for _, record := range records {
		key := record.EventDate.Format("2006-01-02")
		byDate[key] = append(byDate[key], record)
	}

	days := make([]CalendarDay, 0, len(byDate))
	for date, events := range byDate {
		days = append(days, CalendarDay{Date: date, Events: events})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// Upcoming returns today's and the next week's non-cancelled events.
func (s *Service) Upcoming(ctx context.Context) ([]EventDetails, time.Time, time.Time, error) {
	today := dateOnly(s.now())
	until := today.AddDate(0, 0, upcomingDays)

	records, err := s.repo.Upcoming(ctx, today, until)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	details, err := s.detailsForAll(ctx, records)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	return details, today, until, nil
}

func (s *Service) details(ctx context.Context, record *Event) (*EventDetails, error) {
	participants, err := s.repo.ListParticipants(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []Participant{}
	}

	creator, err := s.repo.CreatorUsername(ctx, record.CreatedBy)
	if err != nil {
		return nil, err
	}

	return &EventDetails{Event: *record, Participants: participants, CreatorName: creator}, nil
}

func (s *Service) detailsForAll(ctx context.Context, records []Event) ([]EventDetails, error) {
	details := make([]EventDetails, 0, len(records))
	for i := range records {
		d, err := s.details(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
