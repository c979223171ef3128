// Package usecase は共通のmutationプロトコルを使ってタスク操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"task_backend/internal/feature/task/domain"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/shared/mutation"
)

// TaskRepository はタスクの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TaskRepository interface {
	mutation.Store[*entity.Task]

	// FindAll は全タスクをID順に返します。
	FindAll(ctx context.Context) ([]entity.Task, error)

	// FindByCreator はCreatedByがusernameに一致するタスクを返します。
	FindByCreator(ctx context.Context, username string) ([]entity.Task, error)
}

// taskUsecase はタスク操作のユースケースを定義します。
type taskUsecase struct {
	repo     TaskRepository
	protocol *mutation.Protocol[*entity.Task]
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(repo TaskRepository, opts ...mutation.Option[*entity.Task]) *taskUsecase {
	opts = append([]mutation.Option[*entity.Task]{
		mutation.WithErrors[*entity.Task](domain.ErrTaskIDMismatch, domain.ErrTaskNotFound),
	}, opts...)
	return &taskUsecase{
		repo:     repo,
		protocol: mutation.New[*entity.Task](repo, "task", opts...),
	}
}

// Create は新しいタスクを保存します。クライアントが指定したIDと作成日時は無視します。
func (u *taskUsecase) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	if t == nil {
		return nil, domain.ErrTaskRequired
	}
	created, err := u.protocol.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	slog.InfoContext(ctx, "task created", "task_id", created.ID, "created_by", created.CreatedBy)
	return created, nil
}

func (u *taskUsecase) List(ctx context.Context) ([]entity.Task, error) {
	return u.repo.FindAll(ctx)
}

func (u *taskUsecase) Get(ctx context.Context, id uint) (*entity.Task, error) {
	return u.repo.FindByID(ctx, id)
}

// ListByCreator は指定ユーザーが作成したタスクを返します。
// 該当が無い場合はユーザー名を含むNotFoundエラーを返します。
func (u *taskUsecase) ListByCreator(ctx context.Context, username string) ([]entity.Task, error) {
	tasks, err := u.repo.FindByCreator(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, domain.NoTasksForUser(username)
	}
	return tasks, nil
}

// Update は指定IDのタスクを全項目置き換えで更新します。
func (u *taskUsecase) Update(ctx context.Context, id uint, t *entity.Task) error {
	if t == nil {
		return domain.ErrTaskRequired
	}
	if err := u.protocol.Update(ctx, id, t); err != nil {
		return err
	}
	slog.InfoContext(ctx, "task updated", "task_id", id)
	return nil
}

func (u *taskUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.protocol.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "task deleted", "task_id", id)
	return nil
}
