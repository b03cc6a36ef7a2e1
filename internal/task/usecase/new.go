package usecase

import (
	"task-description-updater/internal/cleaner"
	"task-description-updater/internal/task"
	"task-description-updater/internal/task/repository"
	pkgLog "task-description-updater/pkg/log"
)

type implUseCase struct {
	l              pkgLog.Logger
	repo           repository.TaskRepository
	cleaner        cleaner.Service
	defaultComment string
}

var _ task.UseCase = (*implUseCase)(nil)

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	textCleaner cleaner.Service,
	defaultComment string,
) *implUseCase {
	return &implUseCase{
		l:              l,
		repo:           repo,
		cleaner:        textCleaner,
		defaultComment: defaultComment,
	}
}
