package service

import (
	"context"
	"errors"

	"taskboard/internal/domain"
)

var ErrInvalidStatus = errors.New("task must be incomplete or complete only")

// TaskStore is what the task service needs from the data layer. Implemented
// by repository.TaskRepository; tests use an in-memory fake.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	LinkToUser(ctx context.Context, taskID, userID int64) (bool, error)
	CreateForUser(ctx context.Context, t *domain.Task, userID int64) error
	GetByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	Owner(ctx context.Context, taskID int64) (int64, error)
	Update(ctx context.Context, id int64, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (*domain.Task, error)
}

type TaskInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     domain.Date `json:"due_date"`
	Status      string      `json:"status"`
	IsImportant bool        `json:"is_important"`
}

type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create validates the input, then inserts the task and its ownership link
// as one transaction. Validation happens before any row is written.
func (s *TaskService) Create(ctx context.Context, in TaskInput, userID int64) (*domain.Task, error) {
	if in.Status == "" {
		in.Status = domain.StatusIncomplete
	}
	if !domain.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	t := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		IsImportant: in.IsImportant,
	}
	if err := s.store.CreateForUser(ctx, t, userID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.store.GetByUser(ctx, userID)
}

// Update replaces all mutable fields. The status enum is validated here too,
// matching the create path.
func (s *TaskService) Update(ctx context.Context, id int64, in TaskInput) (*domain.Task, error) {
	if !domain.ValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	return s.store.Update(ctx, id, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		IsImportant: in.IsImportant,
	})
}

func (s *TaskService) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	return s.store.Delete(ctx, id)
}

// Owner reports which user the task is linked to.
func (s *TaskService) Owner(ctx context.Context, taskID int64) (int64, error) {
	return s.store.Owner(ctx, taskID)
}
