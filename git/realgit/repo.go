package realgit

import (
	"context"
	"fmt"

	"github.com/ejoffe/revert/git"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog/log"
)

// Repo reads commit metadata straight from the object database.
type Repo struct {
	repo *gogit.Repository
}

// OpenRepo opens the repository containing path.
func OpenRepo(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &Repo{repo: repo}, nil
}

// Commits resolves each ref (hash, branch, HEAD~n, ...) into a commit.
func (r *Repo) Commits(ctx context.Context, refs []string) ([]git.Commit, error) {
	commits := make([]git.Commit, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
		}
		obj, err := r.repo.CommitObject(*hash)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
		}
		commit := commitFromObject(obj)
		log.Debug().Str("ref", ref).Str("hash", commit.CommitHash).Msg("resolved commit")
		commits = append(commits, commit)
	}
	return commits, nil
}

func commitFromObject(obj *object.Commit) git.Commit {
	hash := obj.Hash.String()
	return git.Commit{
		CommitHash: hash,
		ShortHash:  git.ShortHash(hash),
		Subject:    git.SubjectFromMessage(obj.Message),
		Message:    obj.Message,
		CommitTime: obj.Committer.When,
	}
}
