package config

import (
	"os"
	"path"
	"path/filepath"
)

// Config object to hold revert configuration
type Config struct {
	Repo *RepoConfig
	User *UserConfig
}

// RepoConfig is stored in the repository root in .revert.yml and can be
//  overridden with 'git config revert.<key>'.
type RepoConfig struct {
	// AutoCommit creates a revert commit right after each revert. When false
	//  the reverts are staged and a single commit is proposed at the end.
	AutoCommit bool `default:"true" yaml:"autoCommit"`

	// HaltOnLocalChanges stops the batch at the first commit blocked by
	//  local changes instead of moving on to the next commit.
	HaltOnLocalChanges bool `default:"false" yaml:"haltOnLocalChanges"`

	// HaltOnConflict stops the batch when conflicts are left unresolved.
	HaltOnConflict bool `default:"true" yaml:"haltOnConflict"`

	// HaltOnFailure stops the batch after an unexpected git failure.
	HaltOnFailure bool `default:"true" yaml:"haltOnFailure"`

	// NewestFirst sorts the requested commits by commit time before reverting.
	NewestFirst bool `default:"false" yaml:"newestFirst"`
}

// UserConfig is stored in the users home directory in .revert.yml
type UserConfig struct {
	LogGitCommands bool `default:"false" yaml:"logGitCommands"`
	ColorOutput    bool `default:"true" yaml:"colorOutput"`
	ShowCommitTime bool `default:"false" yaml:"showCommitTime"`
}

// EmptyConfig returns a config with all sections allocated and zero values.
func EmptyConfig() *Config {
	return &Config{
		Repo: &RepoConfig{},
		User: &UserConfig{},
	}
}

// DefaultConfig returns the config used when nothing is configured.
func DefaultConfig() *Config {
	cfg := EmptyConfig()
	cfg.Repo.AutoCommit = true
	cfg.Repo.HaltOnConflict = true
	cfg.Repo.HaltOnFailure = true
	cfg.User.ColorOutput = true
	return cfg
}

// RepoConfigFilePath returns the path of the repository config file.
func RepoConfigFilePath(rootdir string) string {
	return filepath.Clean(path.Join(rootdir, ".revert.yml"))
}

// UserConfigFilePath returns the path of the user config file.
func UserConfigFilePath() string {
	rootdir, err := os.UserHomeDir()
	check(err)
	return filepath.Clean(path.Join(rootdir, ".revert.yml"))
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
