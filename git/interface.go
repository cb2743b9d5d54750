package git

import "context"

// GitInterface runs git commands in the repository root.
type GitInterface interface {
	// Git runs a git command given as a space separated string.
	//  If output is not nil it is set to the combined output of the command,
	//  also when the command fails.
	Git(args string, output *string) error

	// GitArgs runs a git command with pre-split arguments, for arguments
	//  that may contain spaces such as commit messages.
	GitArgs(output *string, args ...string) error

	// RootDir is the top level directory of the working tree.
	RootDir() string
}

// CommitSource resolves history references into commits.
type CommitSource interface {
	// Commits returns one commit per ref, in the order the refs are given.
	Commits(ctx context.Context, refs []string) ([]Commit, error)
}
