package config_parser

import (
	"strconv"
	"strings"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git"
	"github.com/rs/zerolog/log"
)

// gitConfigSource overrides repo config values with 'git config revert.<key>'
//  entries. Git reports keys in lower case.
type gitConfigSource struct {
	gitcmd git.GitInterface
}

func NewGitConfigSource(gitcmd git.GitInterface) *gitConfigSource {
	return &gitConfigSource{
		gitcmd: gitcmd,
	}
}

func (s *gitConfigSource) Load(cfg interface{}) {
	var output string
	err := s.gitcmd.Git(`config --get-regexp ^revert\.`, &output)
	if err != nil {
		// git config exits with 1 when no key matches
		return
	}

	repoCfg := cfg.(*config.RepoConfig)
	for _, line := range strings.Split(output, "\n") {
		key, value, match := getRevertConfigEntry(line)
		if !match {
			continue
		}
		field := repoConfigField(repoCfg, key)
		if field == nil {
			log.Warn().Str("key", key).Msg("unknown git config key")
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			log.Warn().Str("key", key).Str("value", value).Msg("git config value is not a boolean")
			continue
		}
		*field = b
	}
}

func getRevertConfigEntry(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "revert.") {
		return "", "", false
	}
	parts := strings.SplitN(line, " ", 2)
	key := strings.TrimPrefix(parts[0], "revert.")
	value := "true"
	if len(parts) == 2 {
		value = strings.TrimSpace(parts[1])
	}
	return key, value, true
}

func repoConfigField(cfg *config.RepoConfig, key string) *bool {
	switch strings.ToLower(key) {
	case "autocommit":
		return &cfg.AutoCommit
	case "haltonlocalchanges":
		return &cfg.HaltOnLocalChanges
	case "haltonconflict":
		return &cfg.HaltOnConflict
	case "haltonfailure":
		return &cfg.HaltOnFailure
	case "newestfirst":
		return &cfg.NewestFirst
	}
	return nil
}
