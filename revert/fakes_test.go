package revert

import (
	"context"
	"fmt"
	"strings"

	"github.com/ejoffe/revert/git"
)

func strp(s string) *string {
	return &s
}

func makeCommit(n int, subject string) git.Commit {
	hash := fmt.Sprintf("c%d", n) + strings.Repeat("0", 38)
	return git.Commit{
		CommitHash: hash,
		ShortHash:  git.ShortHash(hash),
		Subject:    subject,
		Message:    subject + "\n",
	}
}

// fakeChange is the single file change a fake commit made.
//  A nil content means the file did not exist.
type fakeChange struct {
	path   string
	before *string
	after  *string
}

// fakeRepo models a working tree where each commit changes one file.
type fakeRepo struct {
	files     map[string]string
	dirty     map[string]bool
	changes   map[string]fakeChange
	failures  map[string]error
	commitErr error
	history   []string
	attempts  []string
	cancel    context.CancelFunc
	cancelAt  string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		files:    map[string]string{},
		dirty:    map[string]bool{},
		changes:  map[string]fakeChange{},
		failures: map[string]error{},
	}
}

func (f *fakeRepo) addCommit(c git.Commit, change fakeChange) {
	f.changes[c.CommitHash] = change
	if change.after == nil {
		delete(f.files, change.path)
	} else {
		f.files[change.path] = *change.after
	}
}

func (f *fakeRepo) snapshot() map[string]string {
	files := make(map[string]string, len(f.files))
	for k, v := range f.files {
		files[k] = v
	}
	return files
}

func matches(content string, exists bool, state *string) bool {
	if state == nil {
		return !exists
	}
	return exists && content == *state
}

func (f *fakeRepo) ApplyRevert(ctx context.Context, c git.Commit) (ApplyResult, error) {
	f.attempts = append(f.attempts, c.ShortHash)
	if f.cancel != nil && f.cancelAt == c.ShortHash {
		f.cancel()
		return ApplyResult{}, ctx.Err()
	}
	if err := f.failures[c.CommitHash]; err != nil {
		return ApplyResult{}, err
	}

	change := f.changes[c.CommitHash]
	if f.dirty[change.path] {
		return ApplyResult{Status: ApplyLocalChangesBlocked, Paths: []string{change.path}}, nil
	}

	current, exists := f.files[change.path]
	if matches(current, exists, change.before) {
		return ApplyResult{Status: ApplyNothingToRevert, Paths: []string{change.path}}, nil
	}
	if matches(current, exists, change.after) {
		if change.before == nil {
			delete(f.files, change.path)
		} else {
			f.files[change.path] = *change.before
		}
		return ApplyResult{Status: ApplyClean, Paths: []string{change.path}}, nil
	}

	theirs := ""
	if change.before != nil {
		theirs = *change.before
	}
	f.files[change.path] = git.ConflictMarker + "HEAD\n" + current + "=======\n" +
		theirs + ">>>>>>> parent of " + c.ShortHash + "\n"
	return ApplyResult{Status: ApplyConflicted, Paths: []string{change.path}}, nil
}

func (f *fakeRepo) Commit(ctx context.Context, message string) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.history = append(f.history, message)
	return nil
}

type fakeResolver struct {
	repo       *fakeRepo
	resolve    bool
	resolution string
	err        error
	calls      [][]string
}

func (r *fakeResolver) Resolve(ctx context.Context, c git.Commit, paths []string) (bool, error) {
	r.calls = append(r.calls, paths)
	if r.err != nil {
		return false, r.err
	}
	if r.resolve {
		for _, path := range paths {
			r.repo.files[path] = r.resolution
		}
	}
	return r.resolve, nil
}

type fakeDialog struct {
	accept   bool
	edited   string
	err      error
	proposed []string
}

func (d *fakeDialog) ProposeCommit(ctx context.Context, message string) (string, bool, error) {
	d.proposed = append(d.proposed, message)
	if d.err != nil {
		return "", false, d.err
	}
	if !d.accept {
		return "", false, nil
	}
	if d.edited != "" {
		return d.edited, true, nil
	}
	return message, true, nil
}

type fakeNotifier struct {
	notifications []Notification
}

func (n *fakeNotifier) Notify(notification Notification) {
	n.notifications = append(n.notifications, notification)
}
