package revert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ejoffe/revert/git"
	"github.com/rs/zerolog/log"
)

// NewTerminalPrompt returns a conflict resolver and commit dialog that talk
//  to the user through input and output.
func NewTerminalPrompt(gitcmd git.GitInterface, input io.Reader, output io.Writer) *terminalPrompt {
	return &terminalPrompt{
		gitcmd: gitcmd,
		input:  bufio.NewReader(input),
		output: output,
	}
}

type terminalPrompt struct {
	gitcmd git.GitInterface
	input  *bufio.Reader
	output io.Writer
}

// Resolve waits until the user fixed the conflicted files in their editor.
//  Files still holding conflict markers are reported and the prompt repeats.
//  Resolved files are staged.
func (p *terminalPrompt) Resolve(ctx context.Context, commit git.Commit, paths []string) (bool, error) {
	fmt.Fprintf(p.output, "Reverting %s produced conflicts in:\n", commit)
	for _, path := range paths {
		fmt.Fprintf(p.output, "  %s\n", path)
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprint(p.output, "Resolve the conflicts and press enter to continue, or 'a' to abort: ")
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		if line == "a" || line == "abort" {
			return false, nil
		}

		remaining, err := p.unresolvedPaths(paths)
		if err != nil {
			return false, err
		}
		if len(remaining) > 0 {
			fmt.Fprintf(p.output, "Conflict markers remain in: %s\n", strings.Join(remaining, ", "))
			continue
		}

		for _, path := range paths {
			var output string
			err := p.gitcmd.GitArgs(&output, "add", "-A", "--", path)
			if err != nil {
				return false, fmt.Errorf("unable to stage %s: %s", path, output)
			}
		}
		log.Debug().Str("commit", commit.ShortHash).Strs("paths", paths).Msg("conflicts resolved")
		return true, nil
	}
}

func (p *terminalPrompt) unresolvedPaths(paths []string) ([]string, error) {
	var remaining []string
	for _, path := range paths {
		content, err := os.ReadFile(filepath.Join(p.gitcmd.RootDir(), path))
		if os.IsNotExist(err) {
			// resolved by deleting the file
			continue
		}
		if err != nil {
			return nil, err
		}
		if git.HasConflictMarkers(string(content)) {
			remaining = append(remaining, path)
		}
	}
	return remaining, nil
}

// ProposeCommit shows message and asks for confirmation. Answering 'e'
//  replaces the subject line.
func (p *terminalPrompt) ProposeCommit(ctx context.Context, message string) (string, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		fmt.Fprintf(p.output, "Commit message:\n")
		for _, line := range strings.Split(message, "\n") {
			fmt.Fprintf(p.output, "  %s\n", line)
		}
		fmt.Fprint(p.output, "Commit the revert? [Y/n/e]: ")
		line, err := p.readLine()
		if err != nil {
			return "", false, err
		}

		switch strings.ToLower(line) {
		case "", "y", "yes":
			return message, true, nil
		case "n", "no":
			return "", false, nil
		case "e", "edit":
			fmt.Fprint(p.output, "New subject: ")
			subject, err := p.readLine()
			if err != nil {
				return "", false, err
			}
			if subject != "" {
				message = replaceSubject(message, subject)
			}
		default:
			fmt.Fprint(p.output, "Invalid input\n")
		}
	}
}

func (p *terminalPrompt) readLine() (string, error) {
	line, err := p.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func replaceSubject(message string, subject string) string {
	idx := strings.Index(message, "\n")
	if idx < 0 {
		return subject
	}
	return subject + message[idx:]
}
