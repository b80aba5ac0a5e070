package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskify/internal/model"
	"taskify/internal/pagination"
)

// TaskRepository defines task persistence operations. List methods expose the
// fixed set of query shapes the service actually needs, so each can hit the
// (user_id, date) or column indexes instead of filtering in memory. All of
// them order by date ascending, tie-broken by id, for stable paging.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Delete(ctx context.Context, task *model.Task) error

	FindByUser(ctx context.Context, userID uint, p pagination.Params) ([]model.Task, int64, error)
	FindByUserAndCompleted(ctx context.Context, userID uint, completed bool, p pagination.Params) ([]model.Task, int64, error)
	FindByUserAndPriority(ctx context.Context, userID uint, priority model.Priority, p pagination.Params) ([]model.Task, int64, error)
	FindByUserCompletedAndPriority(ctx context.Context, userID uint, completed bool, priority model.Priority, p pagination.Params) ([]model.Task, int64, error)
	FindByUserAndDate(ctx context.Context, userID uint, date string, p pagination.Params) ([]model.Task, int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

func (r *taskRepository) FindByUser(ctx context.Context, userID uint, p pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
	return listPage(q, p)
}

func (r *taskRepository) FindByUserAndCompleted(ctx context.Context, userID uint, completed bool, p pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND completed = ?", userID, completed)
	return listPage(q, p)
}

func (r *taskRepository) FindByUserAndPriority(ctx context.Context, userID uint, priority model.Priority, p pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND priority = ?", userID, priority)
	return listPage(q, p)
}

func (r *taskRepository) FindByUserCompletedAndPriority(ctx context.Context, userID uint, completed bool, priority model.Priority, p pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND completed = ? AND priority = ?", userID, completed, priority)
	return listPage(q, p)
}

func (r *taskRepository) FindByUserAndDate(ctx context.Context, userID uint, date string, p pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND date = ?", userID, date)
	return listPage(q, p)
}

// listPage counts the filtered rows, then fetches one ordered page of them.
func listPage(q *gorm.DB, p pagination.Params) ([]model.Task, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("date ASC").Order("id ASC")
	if p.Paginated() {
		q = q.Offset(p.Offset()).Limit(p.Size)
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}
