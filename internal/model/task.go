package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority converts a string to a Priority, case-insensitively.
// The boolean reports whether the input named a known level.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToUpper(s)) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// Task is a to-do item owned by exactly one user. Date is kept as an ISO
// "yyyy-mm-dd" string and matched exactly for the today view; it is never
// parsed as a calendar type here. RepeatDays/ExcludedDates are stored
// recurrence metadata with no scheduler behind them yet.
type Task struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index:idx_tasks_user_date;not null"`
	Title         string    `json:"title" gorm:"size:60;not null"`
	Description   string    `json:"description,omitempty" gorm:"size:500"`
	Date          string    `json:"date,omitempty" gorm:"size:10;index:idx_tasks_user_date"`
	Completed     bool      `json:"completed" gorm:"default:false;index"`
	Priority      Priority  `json:"priority" gorm:"size:10;default:'MEDIUM';index"`
	RepeatDays    []string  `json:"repeat_days,omitempty" gorm:"serializer:json"`
	ExcludedDates []string  `json:"excluded_dates,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
