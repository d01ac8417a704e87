package db

import (
	eventdomain "qd-calendar-go/internal/domain/event"
	memberdomain "qd-calendar-go/internal/domain/member"
	userdomain "qd-calendar-go/internal/domain/user"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every domain table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userdomain.User{},
		&memberdomain.Member{},
		&eventdomain.Event{},
		&eventdomain.EventMember{},
	)
}
