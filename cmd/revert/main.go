package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/config/config_parser"
	"github.com/ejoffe/revert/git"
	"github.com/ejoffe/revert/git/realgit"
	"github.com/ejoffe/revert/revert"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "dversion"
	date    = "unknown"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:      "git-revert-stack",
		Usage:     "Revert a list of commits one after the other",
		ArgsUsage: "<commit>...",
		Version:   fmt.Sprintf("%s : %s : %s", version, date, commit[:8]),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-commit",
				Usage: "Stage the reverts and propose a single commit at the end",
			},
			&cli.BoolFlag{
				Name:  "newest-first",
				Usage: "Revert the most recent commit first, regardless of argument order",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show the commits and revert messages without touching the working tree",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write the finished session to stdout as json or yaml",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Show runtime debug info",
			},
		},
		Action: run,
	}

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	refs := c.Args().Slice()
	if len(refs) == 0 {
		return cli.ShowAppHelp(c)
	}
	format := c.String("report")
	if format != "" && format != "json" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("unknown report format %q, use json or yaml", format), 1)
	}

	gitcmd := realgit.NewGitCmd(config.DefaultConfig())
	//  check that we are inside a git dir
	var output string
	err := gitcmd.Git("status --porcelain", &output)
	if err != nil {
		fmt.Println(output)
		return cli.Exit(err, 2)
	}

	cfg := config_parser.ParseConfig(gitcmd)
	gitcmd = realgit.NewGitCmd(cfg)
	ctx := c.Context

	repo, err := realgit.OpenRepo(gitcmd.RootDir())
	check(err)
	commits, err := repo.Commits(ctx, refs)
	if err != nil {
		return cli.Exit(err, 2)
	}
	if c.Bool("newest-first") || cfg.Repo.NewestFirst {
		git.SortNewestFirst(commits)
	}

	if c.Bool("dry-run") {
		printPlan(commits, cfg)
		return nil
	}

	autoCommit := cfg.Repo.AutoCommit && !c.Bool("no-commit")
	prompt := revert.NewTerminalPrompt(gitcmd, os.Stdin, os.Stdout)
	reverter := revert.NewReverter(cfg, revert.NewGitExecutor(gitcmd), prompt, prompt,
		revert.NewTerminalNotifier(os.Stdout, cfg))
	reverter.DebugMode(c.Bool("debug"))

	session := reverter.Run(ctx, revert.Request{Commits: commits, AutoCommit: autoCommit})
	reverter.DebugPrintSummary()
	if session == nil {
		return cli.Exit("revert cancelled", 130)
	}

	if format != "" {
		err = revert.WriteSession(os.Stdout, session, format)
		check(err)
	}
	if session.Halted {
		return cli.Exit("", 1)
	}
	return nil
}

func printPlan(commits []git.Commit, cfg *config.Config) {
	for _, c := range commits {
		if cfg.User.ShowCommitTime {
			fmt.Printf("%s (%s)\n", c, c.CommitTime.Format("2006-01-02 15:04"))
		} else {
			fmt.Println(c)
		}
		for _, line := range strings.Split(git.RevertMessage(c), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
