package revert

import (
	"context"

	"github.com/ejoffe/revert/git"
)

// ApplyStatus classifies the result of applying the revert of one commit.
type ApplyStatus int

const (
	// ApplyClean when the inverse changes applied without conflicts
	ApplyClean ApplyStatus = iota

	// ApplyNothingToRevert when the commit's changes are already absent
	ApplyNothingToRevert

	// ApplyLocalChangesBlocked when uncommitted changes overlap the commit's
	//  paths. The working tree is not modified.
	ApplyLocalChangesBlocked

	// ApplyConflicted when the revert left conflicts in the working tree
	ApplyConflicted
)

// ApplyResult is returned by Executor.ApplyRevert.
type ApplyResult struct {
	Status ApplyStatus

	// Paths are the blocking paths for ApplyLocalChangesBlocked, the
	//  conflicted paths for ApplyConflicted and the touched paths otherwise.
	Paths []string
}

// Executor applies reverts to the working tree and records commits.
type Executor interface {
	// ApplyRevert applies the inverse of commit to the working tree and index
	//  without committing. An error means an unexpected failure.
	ApplyRevert(ctx context.Context, commit git.Commit) (ApplyResult, error)

	// Commit records the staged changes as a new commit.
	Commit(ctx context.Context, message string) error
}

// ConflictResolver lets the user resolve the conflicts of one revert.
type ConflictResolver interface {
	// Resolve blocks until the user resolved all conflicts (true) or gave up (false).
	Resolve(ctx context.Context, commit git.Commit, paths []string) (bool, error)
}

// CommitDialog lets the user review the message of a revert commit.
type CommitDialog interface {
	// ProposeCommit blocks until the user accepts, possibly with an edited
	//  message, or declines.
	ProposeCommit(ctx context.Context, message string) (string, bool, error)
}

// Notifier shows the final report to the user.
type Notifier interface {
	Notify(n Notification)
}
