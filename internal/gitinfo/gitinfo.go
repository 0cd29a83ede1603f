// Package gitinfo inspects directories for git repositories so menus and
// panes can surface repository state.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Info describes the repository a directory belongs to.
type Info struct {
	Path   string
	Branch string
	Clean  bool
}

// Detect reports whether dir is inside a git working tree and returns what
// is known about it. A repository without commits yet has an empty Branch.
func Detect(dir string) (*Info, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, false
	}

	info := &Info{Path: dir}

	if ref, err := repo.Head(); err == nil {
		info.Branch = ref.Name().Short()
	}

	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			info.Clean = status.IsClean()
		}
	}

	return info, true
}
