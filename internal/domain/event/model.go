package event

import (
	"time"

	"qd-calendar-go/internal/domain/member"
	"qd-calendar-go/internal/domain/user"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Event struct {
	ID                   uint      `gorm:"primaryKey"`
	Title                string    `gorm:"size:200;not null"`
	Description          string    `gorm:"type:text"`
	EventDate            time.Time `gorm:"type:date;not null;index"`
	StartTime            *string   `gorm:"type:time"`
	EndTime              *string   `gorm:"type:time"`
	BackgroundImage      *string   `gorm:"size:500"`
	Priority             string    `gorm:"type:varchar(16);not null;default:medium"`
	Status               string    `gorm:"type:varchar(16);not null;default:pending"`
	OrganizerDepartment  *string   `gorm:"size:100"`
	ExpectedParticipants *int
	Location             *string   `gorm:"size:200"`
	CreatedBy            uint      `gorm:"not null;index"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`

	Creator user.User `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE"`
}

// EventMember is one participation row: a member expected at an event.
type EventMember struct {
	EventID   uint      `gorm:"primaryKey"`
	MemberID  uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Event  Event         `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
	Member member.Member `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE"`
}

type Participant struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EventDetails is an Event joined with its participants and creator name.
// CreatorName is nil when the creating account no longer exists.
type EventDetails struct {
	Event
	Participants []Participant
	CreatorName  *string
}

// ListFilter narrows the event listing. Nil / empty fields are not applied.
// Date bounds are inclusive, matching the public list API.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Priority  string
}

type CreateEventInput struct {
	Title                string
	Description          string
	EventDate            time.Time
	StartTime            *string
	EndTime              *string
	BackgroundImage      string
	Priority             string
	Status               string
	OrganizerDepartment  string
	ExpectedParticipants *int
	Location             string
	CreatedBy            uint
	MemberIDs            []uint
}

// OptionalString distinguishes "leave unchanged" (Set false) from
// "set to this value, possibly null" (Set true).
type OptionalString struct {
	Set   bool
	Value *string
}

type UpdateEventInput struct {
	Title                *string
	Description          *string
	EventDate            *time.Time
	StartTime            OptionalString
	EndTime              OptionalString
	BackgroundImage      *string
	Priority             *string
	Status               *string
	OrganizerDepartment  *string
	ExpectedParticipants *int
	Location             *string
	MemberIDs            *[]uint
}

// CalendarDay groups one day's events for the month view.
type CalendarDay struct {
	Date   string
	Events []Event
}
