package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ejoffe/revert/git"
	"github.com/ejoffe/revert/git/realgit"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	version = "dev"
	commit  = "dversion"
	date    = "unknown"
)

// command line opts
type opts struct {
	Debug   bool `short:"d" long:"debug" description:"Show verbose debug info."`
	Version bool `short:"v" long:"version" description:"Show version."`
	Args    struct {
		Ref string `positional-arg-name:"ref" description:"Commit to print the revert message for, HEAD by default."`
	} `positional-args:"yes"`
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	var opts opts
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("revertmsg version : %s : %s : %s\n", version, date, commit[:8])
		os.Exit(0)
	}

	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ref := opts.Args.Ref
	if ref == "" {
		ref = "HEAD"
	}

	repo, err := realgit.OpenRepo(".")
	check(err)
	commits, err := repo.Commits(context.Background(), []string{ref})
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	fmt.Println(git.RevertMessage(commits[0]))
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
