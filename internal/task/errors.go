package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyListID = errors.New("list id is empty")
	ErrEmptyTaskID = errors.New("task id is empty")
	ErrUpdateTask  = errors.New("failed to update task")
)
