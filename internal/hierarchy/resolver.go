package hierarchy

import (
	"context"
	"fmt"
	"slices"

	"task-description-updater/internal/model"
	pkgLog "task-description-updater/pkg/log"
)

// Resolver walks team → spaces → folders → lists once and maps the
// configured names to ids.
type Resolver struct {
	api    API
	target Target
	l      pkgLog.Logger
}

// New creates a new Resolver.
func New(api API, target Target, l pkgLog.Logger) *Resolver {
	return &Resolver{
		api:    api,
		target: target,
		l:      l,
	}
}

// Resolve performs the walk. Requests are issued one at a time. Any
// configured name that does not resolve fails with an error wrapping
// ErrLookup.
func (r *Resolver) Resolve(ctx context.Context) (model.Hierarchy, error) {
	var h model.Hierarchy

	teamID, err := r.resolveTeam(ctx)
	if err != nil {
		return model.Hierarchy{}, err
	}
	h.TeamID = teamID

	spaceIDs, err := r.resolveSpaces(ctx, teamID)
	if err != nil {
		return model.Hierarchy{}, err
	}
	h.SpaceIDs = spaceIDs

	folders, err := r.resolveFolders(ctx, spaceIDs)
	if err != nil {
		return model.Hierarchy{}, err
	}
	h.Folders = folders

	lists, err := r.resolveLists(ctx, folders)
	if err != nil {
		return model.Hierarchy{}, err
	}
	h.Lists = lists

	listID, err := r.resolveDispatchList(ctx, folders, lists)
	if err != nil {
		return model.Hierarchy{}, err
	}
	h.DispatchListID = listID

	r.l.Info(ctx, "Getting active user...")
	user, err := r.api.GetUser(ctx)
	if err != nil {
		return model.Hierarchy{}, fmt.Errorf("failed to get active user: %w", err)
	}
	h.ActiveUser = user
	r.l.Infof(ctx, "Active user: %s (%d)", user.Username, user.ID)

	return h, nil
}

func (r *Resolver) resolveTeam(ctx context.Context) (string, error) {
	r.l.Info(ctx, "Getting team id...")

	teams, err := r.api.GetTeams(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get teams: %w", err)
	}

	for _, team := range teams {
		if team.Name != r.target.TeamName {
			continue
		}
		if r.target.TeamID != "" && r.target.TeamID != team.ID {
			r.l.Warnf(ctx, "Configured team id %s differs from resolved id %s, using resolved", r.target.TeamID, team.ID)
		}
		r.l.Infof(ctx, "Got team %q: %s", team.Name, team.ID)
		return team.ID, nil
	}

	return "", fmt.Errorf("%w: %w: %q", ErrLookup, ErrTeamNotFound, r.target.TeamName)
}

func (r *Resolver) resolveSpaces(ctx context.Context, teamID string) ([]string, error) {
	r.l.Info(ctx, "Getting space ids...")

	spaces, err := r.api.GetSpaces(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spaces of team %s: %w", teamID, err)
	}

	ids := make([]string, 0, len(r.target.SpaceNames))
	found := make(map[string]bool, len(r.target.SpaceNames))
	for _, space := range spaces {
		if !slices.Contains(r.target.SpaceNames, space.Name) {
			continue
		}
		if found[space.Name] {
			// one id per configured name, the first one listed
			r.l.Warnf(ctx, "Space name %q is used by more than one space, ignoring id %s", space.Name, space.ID)
			continue
		}
		ids = append(ids, space.ID)
		found[space.Name] = true
	}

	for _, name := range r.target.SpaceNames {
		if !found[name] {
			return nil, fmt.Errorf("%w: %w: %q", ErrLookup, ErrSpaceNotFound, name)
		}
	}

	r.l.Infof(ctx, "Got %d space ids", len(ids))
	return ids, nil
}

// resolveFolders builds folder name → id over all spaces. A name present
// in several spaces keeps the id seen last.
func (r *Resolver) resolveFolders(ctx context.Context, spaceIDs []string) (map[string]string, error) {
	r.l.Info(ctx, "Getting folder ids...")

	folders := make(map[string]string)
	for _, spaceID := range spaceIDs {
		items, err := r.api.GetFolders(ctx, spaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get folders of space %s: %w", spaceID, err)
		}
		for _, f := range items {
			if prev, ok := folders[f.Name]; ok && prev != f.ID {
				r.l.Debugf(ctx, "Folder name %q seen in several spaces, %s replaces %s", f.Name, f.ID, prev)
			}
			folders[f.Name] = f.ID
		}
	}

	r.l.Infof(ctx, "Got %d folder ids", len(folders))
	return folders, nil
}

// resolveLists fetches the lists of every folder, in folder name order so
// runs are reproducible.
func (r *Resolver) resolveLists(ctx context.Context, folders map[string]string) (map[string]map[string]string, error) {
	r.l.Info(ctx, "Getting list ids...")

	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	slices.Sort(names)

	lists := make(map[string]map[string]string, len(folders))
	for _, folderName := range names {
		folderID := folders[folderName]
		items, err := r.api.GetLists(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get lists of folder %s: %w", folderID, err)
		}

		byName := make(map[string]string, len(items))
		for _, l := range items {
			byName[l.Name] = l.ID
		}
		lists[folderName] = byName
	}

	return lists, nil
}

func (r *Resolver) resolveDispatchList(ctx context.Context, folders map[string]string, lists map[string]map[string]string) (string, error) {
	folderName := r.target.DispatchFolderName
	listName := r.target.DispatchListName

	folderID, ok := folders[folderName]
	if !ok {
		return "", fmt.Errorf("%w: %w: %q", ErrLookup, ErrFolderNotFound, folderName)
	}
	if r.target.DispatchFolderID != "" && r.target.DispatchFolderID != folderID {
		r.l.Warnf(ctx, "Configured folder id %s differs from resolved id %s, using resolved", r.target.DispatchFolderID, folderID)
	}

	listID, ok := lists[folderName][listName]
	if !ok {
		return "", fmt.Errorf("%w: %w: %q in folder %q", ErrLookup, ErrListNotFound, listName, folderName)
	}
	if r.target.DispatchListID != "" && r.target.DispatchListID != listID {
		r.l.Warnf(ctx, "Configured dispatch list id %s differs from resolved id %s, using resolved", r.target.DispatchListID, listID)
	}

	return listID, nil
}
