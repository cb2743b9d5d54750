package revert

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git"
	"github.com/ejoffe/revert/git/realgit"
	"github.com/stretchr/testify/require"
)

// makeGitRepo creates an empty repository and moves into it.
func makeGitRepo(t *testing.T) git.GitInterface {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Han Solo")
	t.Setenv("GIT_AUTHOR_EMAIL", "han@falcon.io")
	t.Setenv("GIT_COMMITTER_NAME", "Han Solo")
	t.Setenv("GIT_COMMITTER_EMAIL", "han@falcon.io")

	out, err := exec.Command("git", "init", "-q", dir).CombinedOutput()
	require.NoError(t, err, string(out))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
	})
	return realgit.NewGitCmd(config.DefaultConfig())
}

func gitCommitAll(t *testing.T, gitcmd git.GitInterface, subject string) git.Commit {
	var out string
	require.NoError(t, gitcmd.Git("add -A", &out), out)
	require.NoError(t, gitcmd.GitArgs(&out, "commit", "-q", "-m", subject), out)
	require.NoError(t, gitcmd.Git("rev-parse HEAD", &out), out)
	return git.Commit{
		CommitHash: out,
		ShortHash:  git.ShortHash(out),
		Subject:    subject,
		Message:    subject + "\n",
	}
}

func requireCleanRepo(t *testing.T, gitcmd git.GitInterface) {
	_, err := os.Stat(filepath.Join(gitcmd.RootDir(), ".git", "REVERT_HEAD"))
	require.True(t, os.IsNotExist(err), "revert still in progress")
	var out string
	require.NoError(t, gitcmd.Git("status --porcelain", &out), out)
	require.Empty(t, out)
}

func makeGitReverter(gitcmd git.GitInterface) (*Reverter, *fakeDialog, *fakeNotifier) {
	dialog := &fakeDialog{accept: true}
	notifier := &fakeNotifier{}
	r := NewReverter(config.DefaultConfig(), NewGitExecutor(gitcmd),
		&fakeResolver{repo: newFakeRepo()}, dialog, notifier)
	return r, dialog, notifier
}

func TestGitRepoNothingToRevertLeavesNoRevertInProgress(t *testing.T) {
	assert := require.New(t)
	gitcmd := makeGitRepo(t)
	root := gitcmd.RootDir()

	assert.NoError(os.WriteFile(filepath.Join(root, "base.txt"), []byte("base\n"), 0644))
	gitCommitAll(t, gitcmd, "base")
	assert.NoError(os.WriteFile(filepath.Join(root, "n.txt"), []byte("n\n"), 0644))
	addN := gitCommitAll(t, gitcmd, "add n")
	assert.NoError(os.Remove(filepath.Join(root, "n.txt")))
	gitCommitAll(t, gitcmd, "del n")

	r, _, notifier := makeGitReverter(gitcmd)
	session := r.Run(context.Background(), Request{Commits: []git.Commit{addN}, AutoCommit: true})

	assert.Equal([]OutcomeKind{NothingToRevert}, outcomeKinds(session))
	assert.Equal(TitleNothingToRevert, notifier.notifications[0].Title)
	requireCleanRepo(t, gitcmd)

	var subject string
	assert.NoError(gitcmd.Git("log -1 --format=%s", &subject))
	assert.Equal("del n", subject)
}

func TestGitRepoRevertAndCommit(t *testing.T) {
	assert := require.New(t)
	gitcmd := makeGitRepo(t)
	root := gitcmd.RootDir()

	assert.NoError(os.WriteFile(filepath.Join(root, "base.txt"), []byte("base\n"), 0644))
	gitCommitAll(t, gitcmd, "base")
	assert.NoError(os.WriteFile(filepath.Join(root, "a.txt"), []byte("a\n"), 0644))
	addA := gitCommitAll(t, gitcmd, "add a")
	assert.NoError(os.WriteFile(filepath.Join(root, "b.txt"), []byte("b\n"), 0644))
	addB := gitCommitAll(t, gitcmd, "add b")

	r, _, _ := makeGitReverter(gitcmd)
	session := r.Run(context.Background(), Request{Commits: []git.Commit{addB, addA}, AutoCommit: true})

	assert.Equal([]OutcomeKind{Success, Success}, outcomeKinds(session))
	assert.NoFileExists(filepath.Join(root, "a.txt"))
	assert.NoFileExists(filepath.Join(root, "b.txt"))
	requireCleanRepo(t, gitcmd)

	var message string
	assert.NoError(gitcmd.Git("log -1 --format=%B", &message))
	assert.Equal(git.RevertMessage(addA), message)
}

func TestGitRepoStagedBatchWithNoop(t *testing.T) {
	assert := require.New(t)
	gitcmd := makeGitRepo(t)
	root := gitcmd.RootDir()

	assert.NoError(os.WriteFile(filepath.Join(root, "base.txt"), []byte("base\n"), 0644))
	gitCommitAll(t, gitcmd, "base")
	assert.NoError(os.WriteFile(filepath.Join(root, "n.txt"), []byte("n\n"), 0644))
	addN := gitCommitAll(t, gitcmd, "add n")
	assert.NoError(os.Remove(filepath.Join(root, "n.txt")))
	gitCommitAll(t, gitcmd, "del n")
	assert.NoError(os.WriteFile(filepath.Join(root, "c.txt"), []byte("c\n"), 0644))
	addC := gitCommitAll(t, gitcmd, "add c")

	r, dialog, _ := makeGitReverter(gitcmd)
	session := r.Run(context.Background(), Request{Commits: []git.Commit{addC, addN}, AutoCommit: false})

	assert.Equal([]OutcomeKind{Success, NothingToRevert}, outcomeKinds(session))
	assert.Equal([]string{git.RevertMessage(addC)}, dialog.proposed)
	assert.True(session.Outcomes[0].Committed)
	assert.NoFileExists(filepath.Join(root, "c.txt"))
	requireCleanRepo(t, gitcmd)
}
