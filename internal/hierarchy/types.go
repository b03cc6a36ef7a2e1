package hierarchy

import (
	"context"

	"task-description-updater/internal/model"
	"task-description-updater/pkg/clickup"
)

// API is the part of the ClickUp client the resolver needs.
type API interface {
	GetTeams(ctx context.Context) ([]clickup.Team, error)
	GetSpaces(ctx context.Context, teamID string) ([]clickup.Space, error)
	GetFolders(ctx context.Context, spaceID string) ([]clickup.Folder, error)
	GetLists(ctx context.Context, folderID string) ([]clickup.List, error)
	GetUser(ctx context.Context) (model.User, error)
}

// Target names what has to be resolved. The ids are optional and only
// compared with what the API returns.
type Target struct {
	TeamName           string
	TeamID             string
	SpaceNames         []string
	DispatchFolderName string
	DispatchFolderID   string
	DispatchListName   string
	DispatchListID     string
}
