package realgit

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ejoffe/revert/config"
	"github.com/rs/zerolog/log"
)

// NewGitCmd returns a new git cmd instance
func NewGitCmd(cfg *config.Config) *gitcmd {
	initcmd := &gitcmd{
		config: cfg,
	}
	var rootdir string
	initcmd.MustGit("rev-parse --show-toplevel", &rootdir)
	rootdir = strings.TrimSpace(rootdir)

	return &gitcmd{
		config:  cfg,
		rootdir: rootdir,
	}
}

type gitcmd struct {
	config  *config.Config
	rootdir string
}

const editorCmd = "/usr/bin/true"

func (c *gitcmd) Git(argStr string, output *string) error {
	return c.run(strings.Split(argStr, " "), output)
}

// MustGit panics when the command fails.
func (c *gitcmd) MustGit(argStr string, output *string) {
	err := c.Git(argStr, output)
	if err != nil {
		panic(err)
	}
}

func (c *gitcmd) GitArgs(output *string, args ...string) error {
	return c.run(args, output)
}

func (c *gitcmd) run(args []string, output *string) error {
	// runs a git command
	//  if output is not nil it will be set to the output of the command
	argStr := strings.Join(args, " ")
	log.Debug().Msg("git " + argStr)
	if c.config.User.LogGitCommands {
		fmt.Printf("> git %s\n", argStr)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = c.rootdir

	cmd.Env = []string{fmt.Sprintf("EDITOR=%s", editorCmd)}
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)

		if len(parts) == 2 && parts[1] != "" && strings.ToUpper(parts[0]) != "EDITOR" {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", parts[0], parts[1]))
		}
	}

	out, err := cmd.CombinedOutput()
	if output != nil {
		*output = strings.TrimSpace(string(out))
	}
	if err != nil {
		log.Debug().Err(err).Str("output", string(out)).Msg("git " + argStr)
		return err
	}
	return nil
}

func (c *gitcmd) RootDir() string {
	return c.rootdir
}
