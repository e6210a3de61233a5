package repository

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task row only. The owning user is set separately via
// LinkToUser; prefer CreateForUser, which does both in one transaction.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, due_date, status, is_important)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING task_id, title, description, due_date, status, is_important, created_at`,
		t.Title, t.Description, t.DueDate.Time, t.Status, t.IsImportant,
	)
	return scanTaskInto(row, t)
}

// LinkToUser creates or moves the task's ownership link. Reports false when
// the referenced user or task does not exist.
func (r *TaskRepository) LinkToUser(ctx context.Context, taskID, userID int64) (bool, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO links (task_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (task_id) DO UPDATE SET user_id = EXCLUDED.user_id`,
		taskID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateForUser inserts the task and links it to userID in a single
// transaction, so a failed link never leaves an orphaned task row behind.
func (r *TaskRepository) CreateForUser(ctx context.Context, t *domain.Task, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO tasks (title, description, due_date, status, is_important)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING task_id, title, description, due_date, status, is_important, created_at`,
		t.Title, t.Description, t.DueDate.Time, t.Status, t.IsImportant,
	)
	if err := scanTaskInto(row, t); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO links (task_id, user_id) VALUES ($1, $2)`,
		t.TaskID, userID,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrLinkFailed
		}
		return err
	}

	return tx.Commit(ctx)
}

// GetByUser returns the user's tasks in insertion order. An empty slice means
// the user has no linked tasks; unlinked tasks are not reachable here.
func (r *TaskRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.task_id, t.title, t.description, t.due_date, t.status, t.is_important, t.created_at
		 FROM tasks t
		 JOIN links l ON l.task_id = t.task_id
		 WHERE l.user_id = $1
		 ORDER BY t.task_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		var due time.Time
		if err := rows.Scan(&t.TaskID, &t.Title, &t.Description, &due, &t.Status, &t.IsImportant, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.DueDate = domain.Date{Time: due}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Owner returns the user a task is linked to, or ErrTaskNotFound for an
// unlinked or missing task.
func (r *TaskRepository) Owner(ctx context.Context, taskID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM links WHERE task_id = $1`, taskID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrTaskNotFound
		}
		return 0, err
	}
	return userID, nil
}

func (r *TaskRepository) Update(ctx context.Context, id int64, t *domain.Task) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, due_date = $4, status = $5, is_important = $6
		 WHERE task_id = $1
		 RETURNING task_id, title, description, due_date, status, is_important, created_at`,
		id, t.Title, t.Description, t.DueDate.Time, t.Status, t.IsImportant,
	)
	var out domain.Task
	if err := scanTaskInto(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes the row and returns its prior values. The link row goes
// with it via ON DELETE CASCADE.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM tasks
		 WHERE task_id = $1
		 RETURNING task_id, title, description, due_date, status, is_important, created_at`,
		id,
	)
	var out domain.Task
	if err := scanTaskInto(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &out, nil
}

func scanTaskInto(row pgx.Row, t *domain.Task) error {
	var due time.Time
	if err := row.Scan(&t.TaskID, &t.Title, &t.Description, &due, &t.Status, &t.IsImportant, &t.CreatedAt); err != nil {
		return err
	}
	t.DueDate = domain.Date{Time: due}
	return nil
}
