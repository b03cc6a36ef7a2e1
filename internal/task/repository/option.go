package repository

// UpdateTaskOptions holds the editable fields sent as a partial update.
type UpdateTaskOptions struct {
	TaskID      string
	Name        string
	Description string
	TextContent string
}

// CreateCommentOptions holds the parameters for posting a task comment.
type CreateCommentOptions struct {
	TaskID    string
	Text      string
	NotifyAll bool
}
