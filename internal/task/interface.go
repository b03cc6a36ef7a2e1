package task

import (
	"context"

	"task-description-updater/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// FetchTasks returns the tasks of one list. An unusable API answer skips
	// the list: it yields no tasks and no error.
	FetchTasks(ctx context.Context, listID string) ([]model.Task, error)

	// Transform returns a cleaned copy of the task. The input is not modified.
	Transform(t model.Task) model.Task

	// Publish writes the cleaned fields back and posts the audit comment.
	// Only the write can fail; the comment is best effort.
	Publish(ctx context.Context, input PublishInput) (PublishOutput, error)
}
