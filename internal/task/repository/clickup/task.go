package clickup

import (
	"context"

	"task-description-updater/internal/model"
	"task-description-updater/internal/task/repository"
	pkgClickUp "task-description-updater/pkg/clickup"
	pkgLog "task-description-updater/pkg/log"
)

type implRepository struct {
	client *pkgClickUp.Client
	l      pkgLog.Logger
}

// New creates a new ClickUp task repository.
func New(client *pkgClickUp.Client, l pkgLog.Logger) repository.TaskRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) ListTasks(ctx context.Context, listID string) ([]model.Task, error) {
	r.l.Debugf(ctx, "clickup repository: listing tasks of list %s", listID)

	tasks, err := r.client.GetTasks(ctx, listID)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) error {
	_, err := r.client.UpdateTask(ctx, opt.TaskID, pkgClickUp.UpdateTaskRequest{
		Name:        opt.Name,
		Description: opt.Description,
		TextContent: opt.TextContent,
	})
	if err != nil {
		r.l.Errorf(ctx, "clickup repository: failed to update task %s: %v", opt.TaskID, err)
		return err
	}
	return nil
}

func (r *implRepository) CreateComment(ctx context.Context, opt repository.CreateCommentOptions) error {
	comment, err := r.client.CreateComment(ctx, opt.TaskID, pkgClickUp.CreateCommentRequest{
		CommentText: opt.Text,
		NotifyAll:   opt.NotifyAll,
	})
	if err != nil {
		return err
	}

	r.l.Debugf(ctx, "clickup repository: comment %v created on task %s", comment.ID, opt.TaskID)
	return nil
}
