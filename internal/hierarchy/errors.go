package hierarchy

import "errors"

// ErrLookup is wrapped by every "configured name not found" error.
var ErrLookup = errors.New("hierarchy lookup failed")

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrSpaceNotFound  = errors.New("space not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrListNotFound   = errors.New("list not found")
)
