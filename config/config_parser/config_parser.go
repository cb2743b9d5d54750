package config_parser

import (
	"github.com/ejoffe/rake"
	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git"
)

// ParseConfig loads the configuration in layers: struct defaults, the repo
//  config file, 'git config revert.*' keys and the user config file.
//  Missing config files are created with the loaded values so they can be
//  edited later.
func ParseConfig(gitcmd git.GitInterface) *config.Config {
	cfg := config.EmptyConfig()

	rake.LoadSources(cfg.Repo,
		rake.DefaultSource(),
		rake.YamlFileSource(config.RepoConfigFilePath(gitcmd.RootDir())),
		rake.YamlFileWriter(config.RepoConfigFilePath(gitcmd.RootDir())),
		NewGitConfigSource(gitcmd),
	)

	rake.LoadSources(cfg.User,
		rake.DefaultSource(),
		rake.YamlFileSource(config.UserConfigFilePath()),
		rake.YamlFileWriter(config.UserConfigFilePath()),
	)

	return cfg
}
