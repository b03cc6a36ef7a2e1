package model

// User is the authenticated ClickUp user.
type User struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
}

// Hierarchy holds the identifiers resolved from the configured names.
// It is built once at startup and never modified afterwards.
type Hierarchy struct {
	TeamID         string                       `json:"team_id" yaml:"team_id"`
	SpaceIDs       []string                     `json:"space_ids" yaml:"space_ids"`
	Folders        map[string]string            `json:"folders" yaml:"folders"`
	Lists          map[string]map[string]string `json:"lists" yaml:"lists"`
	DispatchListID string                       `json:"dispatch_list_id" yaml:"dispatch_list_id"`
	ActiveUser     User                         `json:"active_user" yaml:"active_user"`
}

// RuleSet lists the literal strings stripped from tasks.
// Subjects apply to the title; Headers then Footers apply to the
// description and text content.
type RuleSet struct {
	Subjects []string
	Headers  []string
	Footers  []string
}
