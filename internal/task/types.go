package task

import "task-description-updater/internal/model"

// PublishInput is the input for Publish.
type PublishInput struct {
	Task    model.Task // already transformed
	Comment string     // empty uses the configured default
}

// PublishOutput is the result of Publish.
type PublishOutput struct {
	Comment       string // comment text, returned even when posting failed
	CommentPosted bool
}
