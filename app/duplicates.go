package app

import (
	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/deduplicator"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

type DuplicatesOptions struct {
	Path       string
	Remove     bool
	KeepOldest bool
}

type DuplicatesResult struct {
	Groups  []deduplicator.Group
	Keep    internal.KeepPolicy
	Removed int
	Summary internal.Summary
	Errors  []error
}

// RunDuplicates 列出重复文件，Remove 为 true 时删除多余副本
func RunDuplicates(cfg *config.Config, opts *DuplicatesOptions) (*DuplicatesResult, error) {
	root := ResolveRoot(cfg, opts.Path)

	release, err := acquire(root, !opts.Remove)
	if err != nil {
		return nil, err
	}
	defer release()

	keep := cfg.KeepPolicy()
	if opts.KeepOldest {
		keep = internal.KeepOldest
	}

	s := session.New(root, session.WithDryRun(!opts.Remove))
	groups, err := deduplicator.Find(s)
	if err != nil {
		return nil, err
	}

	result := &DuplicatesResult{Groups: groups, Keep: keep}
	if opts.Remove {
		result.Removed = deduplicator.RemoveGroups(s, groups, keep)
		recordSession(cfg, "duplicates", s)
	}
	result.Summary = s.Summary()
	result.Errors = s.Errors()
	return result, nil
}
