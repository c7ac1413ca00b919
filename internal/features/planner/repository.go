package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/common"
)

// Repository persists subjects and tasks. Every query is scoped by
// user_id so one user can never touch another's planner.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the planner repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// --- Subjects ---

// CreateSubject inserts a subject.
func (r *Repository) CreateSubject(ctx context.Context, userID uuid.UUID, name, color string) (*Subject, error) {
	s := &Subject{ID: uuid.New(), Name: name, Color: color}
	err := r.db.QueryRow(ctx, `
		INSERT INTO subjects (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		s.ID, userID, s.Name, s.Color,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return s, nil
}

// ListSubjects returns the user's subjects, oldest first.
func (r *Repository) ListSubjects(ctx context.Context, userID uuid.UUID) ([]Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, color, created_at
		FROM subjects
		WHERE user_id = $1
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// UpdateSubject renames or recolors a subject.
func (r *Repository) UpdateSubject(ctx context.Context, userID, subjectID uuid.UUID, name, color string) (*Subject, error) {
	var s Subject
	err := r.db.QueryRow(ctx, `
		UPDATE subjects SET name = $3, color = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, name, color, created_at`,
		subjectID, userID, name, color,
	).Scan(&s.ID, &s.Name, &s.Color, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return &s, nil
}

// DeleteSubject removes a subject and its tasks. Past study sessions
// keep their XP but lose the subject link.
func (r *Repository) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE study_sessions SET subject_id = NULL
		WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID,
	); err != nil {
		return fmt.Errorf("failed to unlink sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM tasks WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID,
	); err != nil {
		return fmt.Errorf("failed to delete subject tasks: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM subjects WHERE id = $2 AND user_id = $1`,
		userID, subjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}

	return tx.Commit(ctx)
}

// --- Tasks ---

// CreateTask inserts a task.
func (r *Repository) CreateTask(ctx context.Context, userID uuid.UUID, t *Task) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (id, user_id, subject_id, title, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		t.ID, userID, t.SubjectID, t.Title, t.Priority, t.DueDate,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListTasks returns the user's tasks, open ones first, then by due date.
func (r *Repository) ListTasks(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subject_id, title, priority, due_date, completed, completed_at, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY completed ASC, due_date ASC NULLS LAST, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Title, &t.Priority, &t.DueDate,
			&t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask rewrites the editable fields of a task.
func (r *Repository) UpdateTask(ctx context.Context, userID uuid.UUID, t *Task) error {
	var completedAt *time.Time
	if t.Completed {
		now := time.Now()
		completedAt = &now
	}

	err := r.db.QueryRow(ctx, `
		UPDATE tasks
		SET subject_id = $3, title = $4, priority = $5, due_date = $6,
		    completed = $7,
		    completed_at = CASE
		        WHEN $7 AND completed_at IS NOT NULL THEN completed_at
		        WHEN $7 THEN $8
		        ELSE NULL
		    END
		WHERE id = $1 AND user_id = $2
		RETURNING completed_at, created_at`,
		t.ID, userID, t.SubjectID, t.Title, t.Priority, t.DueDate, t.Completed, completedAt,
	).Scan(&t.CompletedAt, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteTask removes a task.
func (r *Repository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SubjectExists checks ownership before a task references a subject.
func (r *Repository) SubjectExists(ctx context.Context, userID, subjectID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM subjects WHERE id = $1 AND user_id = $2)`,
		subjectID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subject: %w", err)
	}
	return exists, nil
}
