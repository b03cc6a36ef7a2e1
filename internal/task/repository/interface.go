package repository

import (
	"context"

	"task-description-updater/internal/model"
)

// TaskRepository is the interface for remote task data access.
type TaskRepository interface {
	ListTasks(ctx context.Context, listID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) error
	CreateComment(ctx context.Context, opt CreateCommentOptions) error
}
