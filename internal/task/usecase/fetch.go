package usecase

import (
	"context"
	"errors"
	"fmt"

	"task-description-updater/internal/model"
	"task-description-updater/internal/task"
	"task-description-updater/pkg/clickup"
)

// FetchTasks returns the tasks of listID in API order.
func (uc *implUseCase) FetchTasks(ctx context.Context, listID string) ([]model.Task, error) {
	if listID == "" {
		return nil, task.ErrEmptyListID
	}

	uc.l.Infof(ctx, "Fetching tasks of list %s", listID)

	tasks, err := uc.repo.ListTasks(ctx, listID)
	if errors.Is(err, clickup.ErrInvalidResponse) {
		uc.l.Warnf(ctx, "Skipping list %s this cycle, response not usable: %v", listID, err)
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks of list %s: %w", listID, err)
	}

	uc.l.Infof(ctx, "Fetched %d tasks from list %s", len(tasks), listID)
	return tasks, nil
}
