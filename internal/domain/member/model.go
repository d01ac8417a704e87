package member

import "time"

type Member struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:100;not null"`
	Phone      *string   `gorm:"size:20"`
	Email      *string   `gorm:"size:120"`
	Department *string   `gorm:"size:100"`
	Position   *string   `gorm:"size:100"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// MemberDetail is a Member together with how many events they are linked to.
type MemberDetail struct {
	Member
	EventCount int64
}

type ListFilter struct {
	IsActive *bool
	Search   string
	Page     int
	PerPage  int
}

type ListResult struct {
	Members     []Member
	Total       int64
	Pages       int
	CurrentPage int
}

type CreateMemberInput struct {
	Name       string
	Phone      *string
	Email      *string
	Department *string
	Position   *string
	IsActive   *bool
}

type UpdateMemberInput struct {
	Name       *string
	Phone      *string
	Email      *string
	Department *string
	Position   *string
	IsActive   *bool
}

type DepartmentCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalMembers    int64             `json:"total_members"`
	InactiveMembers int64             `json:"inactive_members"`
	Departments     []DepartmentCount `json:"departments"`
}
