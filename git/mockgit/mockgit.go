package mockgit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ejoffe/revert/git"
	"github.com/stretchr/testify/require"
)

// NewMockGit returns a git runner that expects an exact sequence of commands.
func NewMockGit(t *testing.T) *Mock {
	return &Mock{
		assert:  require.New(t),
		rootdir: t.TempDir(),
	}
}

type Mock struct {
	assert      *require.Assertions
	rootdir     string
	expectedCmd []string
	response    []cmdresponse
}

type cmdresponse struct {
	valid  bool
	output string
	err    error
}

func (m *Mock) Git(args string, output *string) error {
	return m.run("git "+args, output)
}

func (m *Mock) GitArgs(output *string, args ...string) error {
	return m.run("git "+strings.Join(args, " "), output)
}

func (m *Mock) RootDir() string {
	return m.rootdir
}

func (m *Mock) run(actual string, output *string) error {
	fmt.Printf("CMD: %s\n", actual)

	m.assert.NotEmpty(m.expectedCmd, "unexpected git command: %s", actual)
	expected := m.expectedCmd[0]
	m.assert.Equal(expected, actual)

	resp := m.response[0]
	m.expectedCmd = m.expectedCmd[1:]
	m.response = m.response[1:]

	if resp.valid {
		m.assert.NotNil(output, "expected output for: %s", actual)
	}
	if output != nil {
		*output = resp.output
	}
	return resp.err
}

// ExpectationsMet fails the test if expected commands were never run.
func (m *Mock) ExpectationsMet() {
	m.assert.Empty(m.expectedCmd, "expected additional git commands")
}

func (m *Mock) ExpectDiffTree(c git.Commit, paths ...string) {
	m.Expect("git diff-tree --no-commit-id --name-only -r --root %s", c.CommitHash).
		Respond(strings.Join(paths, "\n"))
}

func (m *Mock) ExpectLocalChanges(paths ...string) {
	m.Expect("git diff --name-only HEAD").
		Respond(strings.Join(paths, "\n"))
}

func (m *Mock) ExpectWriteTree(tree string) {
	m.Expect("git write-tree").Respond(tree)
}

func (m *Mock) ExpectRevert(c git.Commit) {
	m.Expect("git revert --no-commit %s", c.CommitHash)
}

func (m *Mock) ExpectRevertQuit() {
	m.Expect("git revert --quit").Respond("")
}

func (m *Mock) ExpectRevertConflict(c git.Commit, conflicted ...string) {
	out := ""
	for _, path := range conflicted {
		out += fmt.Sprintf("CONFLICT (content): Merge conflict in %s\n", path)
	}
	out += fmt.Sprintf("error: could not revert %s... %s", c.ShortHash, c.Subject)
	m.Expect("git revert --no-commit %s", c.CommitHash).Fail(out)
}

func (m *Mock) ExpectUnmergedPaths(paths ...string) {
	m.Expect("git diff --name-only --diff-filter=U").
		Respond(strings.Join(paths, "\n"))
}

func (m *Mock) ExpectCommit(message string) {
	m.Expect("git commit --cleanup=verbatim -m %s", message)
}

func (m *Mock) ExpectAdd(path string) {
	m.Expect("git add -A -- %s", path)
}

func (m *Mock) ExpectGitConfig(lines ...string) {
	if len(lines) == 0 {
		m.Expect(`git config --get-regexp ^revert\.`).Fail("")
		return
	}
	m.Expect(`git config --get-regexp ^revert\.`).Respond(strings.Join(lines, "\n"))
}

// Expect adds a command to the expected sequence.
func (m *Mock) Expect(cmd string, args ...interface{}) *Mock {
	m.expectedCmd = append(m.expectedCmd, fmt.Sprintf(cmd, args...))
	m.response = append(m.response, cmdresponse{valid: false})
	return m
}

// Respond sets the output of the last expected command.
func (m *Mock) Respond(output string) {
	m.response[len(m.response)-1] = cmdresponse{
		valid:  true,
		output: output,
	}
}

// Fail makes the last expected command fail with the given output.
func (m *Mock) Fail(output string) {
	m.response[len(m.response)-1] = cmdresponse{
		output: output,
		err:    errors.New("exit status 1"),
	}
}
