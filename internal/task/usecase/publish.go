package usecase

import (
	"context"
	"fmt"

	"task-description-updater/internal/task"
	"task-description-updater/internal/task/repository"
)

// Publish writes the task and then comments on it. A failed write is
// returned and nothing is commented; a failed comment is only logged.
func (uc *implUseCase) Publish(ctx context.Context, input task.PublishInput) (task.PublishOutput, error) {
	t := input.Task
	if t.ID == "" {
		return task.PublishOutput{}, task.ErrEmptyTaskID
	}

	err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
		TaskID:      t.ID,
		Name:        t.Name,
		Description: t.Description,
		TextContent: t.TextContent,
	})
	if err != nil {
		return task.PublishOutput{}, fmt.Errorf("%w %s: %w", task.ErrUpdateTask, t.ID, err)
	}
	uc.l.Infof(ctx, "Task updated...Name: %q, ID: %s", t.Name, t.ID)

	comment := input.Comment
	if comment == "" {
		comment = uc.defaultComment
	}

	uc.l.Infof(ctx, "Posting comment to task %s", t.ID)
	if err := uc.repo.CreateComment(ctx, repository.CreateCommentOptions{
		TaskID: t.ID,
		Text:   comment,
	}); err != nil {
		uc.l.Warnf(ctx, "Comment on task %s not confirmed: %v", t.ID, err)
		return task.PublishOutput{Comment: comment}, nil
	}

	uc.l.Infof(ctx, "Comment posted to task %s", t.ID)
	return task.PublishOutput{Comment: comment, CommentPosted: true}, nil
}
