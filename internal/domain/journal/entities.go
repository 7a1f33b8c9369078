package journal

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("journal: event not found")

// EventRecord is the persisted form of a domain event. The journal is
// append-only: records are never updated or deleted.
type EventRecord struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID   string    `gorm:"column:event_id;type:char(32);not null;uniqueIndex:ux_loan_events_event_id" json:"event_id"`
	Name      string    `gorm:"column:name;size:32;not null;index" json:"name"`
	LoanID    uint64    `gorm:"column:loan_id;not null;index" json:"loan_id"`
	Payload   string    `gorm:"column:payload;type:text;not null" json:"payload"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EventRecord) TableName() string { return "loan_events" }
