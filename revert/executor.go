package revert

import (
	"context"
	"fmt"
	"strings"

	"github.com/ejoffe/revert/git"
	"github.com/rs/zerolog/log"
)

// NewGitExecutor returns an executor driving the git command line.
func NewGitExecutor(gitcmd git.GitInterface) *gitExecutor {
	return &gitExecutor{
		gitcmd:   gitcmd,
		reverted: map[string]bool{},
	}
}

type gitExecutor struct {
	gitcmd git.GitInterface

	// reverted holds paths changed by earlier reverts that are not
	//  committed yet, they are not local changes of the user.
	reverted map[string]bool
}

// ApplyRevert checks the commit's paths against local modifications, then
//  runs 'git revert --no-commit'. Comparing the index tree before and after
//  the revert tells a no-op apart from a real change, also when earlier
//  reverts of the same batch are still staged.
func (e *gitExecutor) ApplyRevert(ctx context.Context, commit git.Commit) (ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return ApplyResult{}, err
	}

	var output string
	err := e.gitcmd.Git("diff-tree --no-commit-id --name-only -r --root "+commit.CommitHash, &output)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("unable to read changes of %s: %s", commit.ShortHash, output)
	}
	paths := git.ParseNameList(output)

	err = e.gitcmd.Git("diff --name-only HEAD", &output)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("unable to read local changes: %s", output)
	}
	var local []string
	for _, path := range git.ParseNameList(output) {
		if !e.reverted[path] {
			local = append(local, path)
		}
	}
	blocked := git.OverlappingPaths(paths, local)
	if len(blocked) > 0 {
		log.Debug().Str("commit", commit.ShortHash).Strs("paths", blocked).Msg("ApplyRevert :: local changes")
		return ApplyResult{Status: ApplyLocalChangesBlocked, Paths: blocked}, nil
	}

	var treeBefore string
	err = e.gitcmd.Git("write-tree", &treeBefore)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("unable to read index: %s", treeBefore)
	}

	err = e.gitcmd.Git("revert --no-commit "+commit.CommitHash, &output)
	if err != nil {
		if strings.Contains(output, "would be overwritten") {
			// git refused before touching the tree, e.g. untracked files in the way
			return ApplyResult{Status: ApplyLocalChangesBlocked, Paths: paths}, nil
		}
		var unmerged string
		uerr := e.gitcmd.Git("diff --name-only --diff-filter=U", &unmerged)
		conflicted := git.ParseNameList(unmerged)
		if uerr == nil && len(conflicted) > 0 {
			e.markReverted(paths)
			log.Debug().Str("commit", commit.ShortHash).Strs("paths", conflicted).Msg("ApplyRevert :: conflicts")
			return ApplyResult{Status: ApplyConflicted, Paths: conflicted}, nil
		}
		return ApplyResult{}, fmt.Errorf("git revert %s failed: %s", commit.ShortHash, output)
	}

	var treeAfter string
	err = e.gitcmd.Git("write-tree", &treeAfter)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("unable to read index: %s", treeAfter)
	}
	if treeBefore == treeAfter {
		// drop REVERT_HEAD and the prepared message, nothing was reverted
		err = e.gitcmd.Git("revert --quit", &output)
		if err != nil {
			return ApplyResult{}, fmt.Errorf("unable to clear revert state of %s: %s", commit.ShortHash, output)
		}
		return ApplyResult{Status: ApplyNothingToRevert, Paths: paths}, nil
	}
	e.markReverted(paths)
	return ApplyResult{Status: ApplyClean, Paths: paths}, nil
}

func (e *gitExecutor) Commit(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var output string
	err := e.gitcmd.GitArgs(&output, "commit", "--cleanup=verbatim", "-m", message)
	if err != nil {
		return fmt.Errorf("git commit failed: %s", output)
	}
	e.reverted = map[string]bool{}
	return nil
}

func (e *gitExecutor) markReverted(paths []string) {
	for _, path := range paths {
		e.reverted[path] = true
	}
}
