// Package adapters provides the GORM-backed task store.
package adapters

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"task_backend/internal/feature/task/domain"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/feature/task/usecase"
)

// taskGorm implements usecase.TaskRepository on top of GORM.
type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new taskGorm.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func (r *taskGorm) Insert(ctx context.Context, t *entity.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return errors.Wrap(err, "taskGorm.Insert")
	}
	return nil
}

func (r *taskGorm) FindAll(ctx context.Context) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "taskGorm.FindAll")
	}
	return tasks, nil
}

// FindByID returns domain.ErrTaskNotFound when no task matches.
func (r *taskGorm) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "taskGorm.FindByID")
	}
	return &t, nil
}

// FindByCreator returns the tasks created by username, possibly none.
func (r *taskGorm) FindByCreator(ctx context.Context, username string) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).Where("created_by = ?", username).Order("id").Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "taskGorm.FindByCreator")
	}
	return tasks, nil
}

func (r *taskGorm) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "taskGorm.Exists")
	}
	return count > 0, nil
}

// Replace overwrites every column of the task with t.ID and bumps its version.
// When t.Version is non-zero the stored version must match.
func (r *taskGorm) Replace(ctx context.Context, t *entity.Task) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.Task{}).Where("id = ?", t.ID)
	if t.Version != 0 {
		q = q.Where("version = ?", t.Version)
	}
	res := q.Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"created_by":  t.CreatedBy,
		"status":      t.Status,
		"priority":    t.Priority,
		"progress":    t.Progress,
		"due_date":    t.DueDate,
		"created_at":  t.CreatedAt,
		"version":     gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "taskGorm.Replace")
	}
	return res.RowsAffected > 0, nil
}

// Remove returns domain.ErrTaskNotFound when no row was deleted.
func (r *taskGorm) Remove(ctx context.Context, t *entity.Task) error {
	res := r.db.WithContext(ctx).Delete(&entity.Task{}, t.ID)
	if res.Error != nil {
		return errors.Wrap(res.Error, "taskGorm.Remove")
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
