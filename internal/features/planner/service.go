package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/common"
)

// Service implements the planner operations. Validation of the request
// shape lives in the handlers; the service enforces cross-row rules
// like subject ownership.
type Service struct {
	repo *Repository
}

// NewService creates the planner service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Subjects lists the user's subjects.
func (s *Service) Subjects(ctx context.Context, userID uuid.UUID) ([]Subject, error) {
	return s.repo.ListSubjects(ctx, userID)
}

// CreateSubject adds a subject.
func (s *Service) CreateSubject(ctx context.Context, userID uuid.UUID, name, color string) (*Subject, error) {
	return s.repo.CreateSubject(ctx, userID, name, color)
}

// UpdateSubject renames or recolors a subject.
func (s *Service) UpdateSubject(ctx context.Context, userID, subjectID uuid.UUID, name, color string) (*Subject, error) {
	return s.repo.UpdateSubject(ctx, userID, subjectID, name, color)
}

// DeleteSubject removes a subject, its tasks, and the link from past
// sessions. The sessions themselves survive: earned XP is never
// clawed back.
func (s *Service) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	if err := s.repo.DeleteSubject(ctx, userID, subjectID); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user_id":    userID,
		"subject_id": subjectID,
	}).Info("Subject deleted")
	return nil
}

// Tasks lists the user's tasks.
func (s *Service) Tasks(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	return s.repo.ListTasks(ctx, userID)
}

// TaskInput carries the writable task fields.
type TaskInput struct {
	SubjectID *uuid.UUID `json:"subject_id"`
	Title     string     `json:"title"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"due_date"`
	Completed bool       `json:"completed"`
}

// CreateTask adds a task, verifying any subject reference belongs to
// the user.
func (s *Service) CreateTask(ctx context.Context, userID uuid.UUID, in TaskInput) (*Task, error) {
	if err := s.checkSubject(ctx, userID, in.SubjectID); err != nil {
		return nil, err
	}

	t := &Task{
		ID:        uuid.New(),
		SubjectID: in.SubjectID,
		Title:     in.Title,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
	}
	if err := s.repo.CreateTask(ctx, userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask rewrites a task.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, in TaskInput) (*Task, error) {
	if err := s.checkSubject(ctx, userID, in.SubjectID); err != nil {
		return nil, err
	}

	t := &Task{
		ID:        taskID,
		SubjectID: in.SubjectID,
		Title:     in.Title,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
		Completed: in.Completed,
	}
	if err := s.repo.UpdateTask(ctx, userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.repo.DeleteTask(ctx, userID, taskID)
}

func (s *Service) checkSubject(ctx context.Context, userID uuid.UUID, subjectID *uuid.UUID) error {
	if subjectID == nil {
		return nil
	}
	ok, err := s.repo.SubjectExists(ctx, userID, *subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}
