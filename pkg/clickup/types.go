package clickup

import (
	"time"

	"task-description-updater/internal/model"
)

const (
	AuthModeToken = "token" // personal token sent as-is
	AuthModeOAuth = "oauth" // OAuth access token sent as "Bearer <token>"
)

// URLs are the endpoint bases the client builds request paths from.
type URLs struct {
	Team   string // GET {Team} lists teams, {Team}/{id}/space lists spaces
	Space  string // {Space}/{id}/folder
	Folder string // {Folder}/{id}/list
	List   string // {List}/{id}/task
	Task   string // {Task}/{id}, {Task}/{id}/comment
	User   string // authenticated user
}

// Config configures a Client.
type Config struct {
	APIKey   string
	AuthMode string
	Timeout  time.Duration
	URLs     URLs
}

// Team is a ClickUp workspace.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Space is a space inside a team.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder is a folder inside a space.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a list inside a folder.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateTaskRequest is the partial update sent with PUT /task/{id}.
type UpdateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TextContent string `json:"text_content"`
}

// CreateCommentRequest is the body for POST /task/{id}/comment.
type CreateCommentRequest struct {
	CommentText string `json:"comment_text"`
	Assignee    *int64 `json:"assignee"`
	NotifyAll   bool   `json:"notify_all"`
}

// Comment is the API answer to a comment creation.
type Comment struct {
	ID     any    `json:"id"`
	HistID string `json:"hist_id"`
	Date   any    `json:"date"`
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type tasksResponse struct {
	Tasks []model.Task `json:"tasks"`
}

type userResponse struct {
	User model.User `json:"user"`
}
