package usecase

import "task-description-updater/internal/model"

// Transform cleans the title, description and text content of a copy of t.
func (uc *implUseCase) Transform(t model.Task) model.Task {
	out := t.Clone()
	out.Name = uc.cleaner.Subject(t.Name)
	out.Description = uc.cleaner.Body(t.Description)
	out.TextContent = uc.cleaner.Body(t.TextContent)
	return out
}
