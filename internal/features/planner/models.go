// Package planner manages study subjects and their tasks.
package planner

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities. Stored as text, validated on write.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Subject is a course or topic study sessions and tasks hang off.
type Subject struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is one planner item, optionally tied to a subject.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	SubjectID   *uuid.UUID `json:"subject_id"`
	Title       string     `json:"title"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
