// Package dto holds the JSON shapes of the task endpoints.
package dto

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"task_backend/internal/feature/task/domain/entity"
)

// TaskReq is the body of POST /task and PUT /task/{id}.
type TaskReq struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedBy   string        `json:"createdBy"`
	Status      entity.Status `json:"status"`
	Priority    string        `json:"priority"`
	Progress    int           `json:"progress"`
	DueDate     time.Time     `json:"dueDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	Version     uint          `json:"version"`
}

// DecodeTaskReq reads a TaskReq from r. It returns nil for an empty body or a JSON null.
func DecodeTaskReq(r io.Reader) (*TaskReq, error) {
	var req *TaskReq
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// ToEntity converts the request into a task.
func (r *TaskReq) ToEntity() *entity.Task {
	return &entity.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		Status:      r.Status,
		Priority:    r.Priority,
		Progress:    r.Progress,
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		Version:     r.Version,
	}
}

// TaskRes is the public representation of a task.
type TaskRes struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedBy   string        `json:"createdBy"`
	Status      entity.Status `json:"status"`
	Priority    string        `json:"priority"`
	Progress    int           `json:"progress"`
	DueDate     time.Time     `json:"dueDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	Version     uint          `json:"version"`
}

func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		Status:      t.Status,
		Priority:    t.Priority,
		Progress:    t.Progress,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		Version:     t.Version,
	}
}

func NewTaskListRes(tasks []entity.Task) []TaskRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskRes(&tasks[i]))
	}
	return out
}
