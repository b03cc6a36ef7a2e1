package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"task-description-updater/internal/model"
)

// Client is the HTTP wrapper for the ClickUp v2 REST API.
type Client struct {
	urls       URLs
	apiKey     string
	authMode   string
	httpClient *http.Client
}

// NewClient creates a new ClickUp HTTP client.
func NewClient(cfg Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.AuthMode == AuthModeOAuth {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"}),
			Base:   http.DefaultTransport,
		}
	}

	return &Client{
		urls:       cfg.URLs,
		apiKey:     cfg.APIKey,
		authMode:   cfg.AuthMode,
		httpClient: httpClient,
	}
}

// GetTeams lists the teams (workspaces) the token can see.
func (c *Client) GetTeams(ctx context.Context) ([]Team, error) {
	var out teamsResponse
	if err := c.do(ctx, "get teams", http.MethodGet, c.urls.Team, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// GetSpaces lists the non archived spaces of a team.
func (c *Client) GetSpaces(ctx context.Context, teamID string) ([]Space, error) {
	u, err := url.JoinPath(c.urls.Team, teamID, "space")
	if err != nil {
		return nil, fmt.Errorf("failed to build spaces url: %w", err)
	}

	var out spacesResponse
	if err := c.do(ctx, "get spaces", http.MethodGet, u, notArchived(), nil, &out); err != nil {
		return nil, err
	}
	return out.Spaces, nil
}

// GetFolders lists the non archived folders of a space.
func (c *Client) GetFolders(ctx context.Context, spaceID string) ([]Folder, error) {
	u, err := url.JoinPath(c.urls.Space, spaceID, "folder")
	if err != nil {
		return nil, fmt.Errorf("failed to build folders url: %w", err)
	}

	var out foldersResponse
	if err := c.do(ctx, "get folders", http.MethodGet, u, notArchived(), nil, &out); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

// GetLists lists the non archived lists of a folder.
func (c *Client) GetLists(ctx context.Context, folderID string) ([]List, error) {
	u, err := url.JoinPath(c.urls.Folder, folderID, "list")
	if err != nil {
		return nil, fmt.Errorf("failed to build lists url: %w", err)
	}

	var out listsResponse
	if err := c.do(ctx, "get lists", http.MethodGet, u, notArchived(), nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// GetTasks returns the tasks of a list in API order.
func (c *Client) GetTasks(ctx context.Context, listID string) ([]model.Task, error) {
	u, err := url.JoinPath(c.urls.List, listID, "task")
	if err != nil {
		return nil, fmt.Errorf("failed to build tasks url: %w", err)
	}

	var out tasksResponse
	if err := c.do(ctx, "get tasks", http.MethodGet, u, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// GetUser returns the user the token belongs to.
func (c *Client) GetUser(ctx context.Context) (model.User, error) {
	var out userResponse
	if err := c.do(ctx, "get user", http.MethodGet, c.urls.User, nil, nil, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// UpdateTask sends a partial update via PUT /task/{id} and returns the
// decoded answer.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (map[string]any, error) {
	u, err := url.JoinPath(c.urls.Task, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to build task url: %w", err)
	}

	var out map[string]any
	if err := c.do(ctx, "update task", http.MethodPut, u, nil, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment on a task.
func (c *Client) CreateComment(ctx context.Context, taskID string, req CreateCommentRequest) (*Comment, error) {
	u, err := url.JoinPath(c.urls.Task, taskID, "comment")
	if err != nil {
		return nil, fmt.Errorf("failed to build comment url: %w", err)
	}

	var out Comment
	if err := c.do(ctx, "create comment", http.MethodPost, u, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes the JSON answer into out. Any answer
// that is not a 2xx JSON document of the expected shape yields an
// *APIError matching ErrInvalidResponse.
func (c *Client) do(ctx context.Context, op, method, rawURL string, query url.Values, in, out any) error {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.authMode != AuthModeOAuth {
		httpReq.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call clickup %s API: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read clickup %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !gjson.ValidBytes(raw) {
		return newAPIError(op, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		e := newAPIError(op, resp.StatusCode, raw)
		e.Message = fmt.Sprintf("failed to decode response: %v", err)
		return e
	}
	return nil
}

func notArchived() url.Values {
	return url.Values{"archived": []string{"false"}}
}
