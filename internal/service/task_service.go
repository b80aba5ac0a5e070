package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskify/internal/errors"
	"taskify/internal/model"
	"taskify/internal/pagination"
	"taskify/internal/repository"
)

// TaskInput carries the writable task fields. Priority is the raw string from
// the request; empty defaults to MEDIUM, anything unrecognized is rejected.
type TaskInput struct {
	Title         string
	Description   string
	Date          string
	Priority      string
	RepeatDays    []string
	ExcludedDates []string
}

// ListFilters are the optional list query filters.
type ListFilters struct {
	Completed *bool
	Priority  string
}

// TaskService handles task operations. Every read and write is scoped to the
// authenticated owner; a task that exists but belongs to someone else is
// reported exactly like one that does not exist.
type TaskService interface {
	Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, userID uint, input TaskInput) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID, userID uint) error
	ToggleComplete(ctx context.Context, id uuid.UUID, userID uint, completed bool) (*model.Task, error)
	List(ctx context.Context, userID uint, filters ListFilters, p pagination.Params) (pagination.Page[model.Task], error)
	ListToday(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[model.Task], error)
}

type taskService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo, now: time.Now}
}

// Create builds and persists a task owned by userID.
func (s *taskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	priority, err := parsePriorityOrDefault(input.Priority)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		Date:          input.Date,
		Priority:      priority,
		RepeatDays:    input.RepeatDays,
		ExcludedDates: input.ExcludedDates,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update overwrites the writable fields of an owned task.
func (s *taskService) Update(ctx context.Context, id uuid.UUID, userID uint, input TaskInput) (*model.Task, error) {
	priority, err := parsePriorityOrDefault(input.Priority)
	if err != nil {
		return nil, err
	}

	task, err := s.ownedTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Date = input.Date
	task.Priority = priority
	task.RepeatDays = input.RepeatDays
	task.ExcludedDates = input.ExcludedDates
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes an owned task.
func (s *taskService) Delete(ctx context.Context, id uuid.UUID, userID uint) error {
	task, err := s.ownedTask(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ToggleComplete sets only the completed flag of an owned task. Idempotent:
// re-applying the same flag succeeds and leaves the task unchanged.
func (s *taskService) ToggleComplete(ctx context.Context, id uuid.UUID, userID uint, completed bool) (*model.Task, error) {
	task, err := s.ownedTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	task.Completed = completed
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return task, nil
}

// List returns the user's tasks with optional completed/priority filters.
// The narrowest matching repository query is dispatched so the filters run
// against indexes rather than in memory.
func (s *taskService) List(ctx context.Context, userID uint, filters ListFilters, p pagination.Params) (pagination.Page[model.Task], error) {
	var priority model.Priority
	hasPriority := filters.Priority != ""
	if hasPriority {
		parsed, ok := model.ParsePriority(filters.Priority)
		if !ok {
			return pagination.Page[model.Task]{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidPriority, filters.Priority)
		}
		priority = parsed
	}

	var (
		tasks []model.Task
		total int64
		err   error
	)
	switch {
	case filters.Completed != nil && hasPriority:
		tasks, total, err = s.repo.FindByUserCompletedAndPriority(ctx, userID, *filters.Completed, priority, p)
	case filters.Completed != nil:
		tasks, total, err = s.repo.FindByUserAndCompleted(ctx, userID, *filters.Completed, p)
	case hasPriority:
		tasks, total, err = s.repo.FindByUserAndPriority(ctx, userID, priority, p)
	default:
		tasks, total, err = s.repo.FindByUser(ctx, userID, p)
	}
	if err != nil {
		return pagination.Page[model.Task]{}, fmt.Errorf("list tasks: %w", err)
	}
	return pagination.NewPage(tasks, p, total), nil
}

// ListToday returns tasks whose date equals the server's current calendar
// date, by exact string match.
func (s *taskService) ListToday(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[model.Task], error) {
	today := s.now().Format("2006-01-02")
	tasks, total, err := s.repo.FindByUserAndDate(ctx, userID, today, p)
	if err != nil {
		return pagination.Page[model.Task]{}, fmt.Errorf("list today: %w", err)
	}
	return pagination.NewPage(tasks, p, total), nil
}

// ownedTask loads a task and checks ownership, collapsing "absent" and
// "not yours" into the same not-found error.
func (s *taskService) ownedTask(ctx context.Context, id uuid.UUID, userID uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func parsePriorityOrDefault(raw string) (model.Priority, error) {
	if raw == "" {
		return model.PriorityMedium, nil
	}
	priority, ok := model.ParsePriority(raw)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidPriority, raw)
	}
	return priority, nil
}
