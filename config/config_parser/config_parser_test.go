package config_parser

import (
	"os"
	"testing"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git/mockgit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRevertConfigEntry(t *testing.T) {
	type testCase struct {
		line  string
		key   string
		value string
		match bool
	}
	testCases := []testCase{
		{"revert.autocommit false", "autocommit", "false", true},
		{"revert.haltonlocalchanges true", "haltonlocalchanges", "true", true},
		{"  revert.newestfirst  yes ", "newestfirst", "yes", true},
		{"revert.haltonconflict", "haltonconflict", "true", true},
		{"user.name r2", "", "", false},
		{"", "", "", false},
	}
	for i, testCase := range testCases {
		t.Logf("Testing %v %q", i, testCase.line)
		key, value, match := getRevertConfigEntry(testCase.line)
		assert.Equal(t, testCase.key, key)
		assert.Equal(t, testCase.value, value)
		assert.Equal(t, testCase.match, match)
	}
}

func TestGitConfigSource(t *testing.T) {
	mock := mockgit.NewMockGit(t)
	mock.ExpectGitConfig(
		"revert.autocommit false",
		"revert.haltonlocalchanges true",
		"revert.haltonfailure maybe",
		"revert.unknown true",
	)

	actual := config.DefaultConfig()
	source := NewGitConfigSource(mock)
	source.Load(actual.Repo)

	expect := config.DefaultConfig().Repo
	expect.AutoCommit = false
	expect.HaltOnLocalChanges = true
	assert.Equal(t, expect, actual.Repo)
	mock.ExpectationsMet()
}

func TestGitConfigSourceNoKeys(t *testing.T) {
	mock := mockgit.NewMockGit(t)
	mock.ExpectGitConfig()

	actual := config.DefaultConfig()
	NewGitConfigSource(mock).Load(actual.Repo)
	assert.Equal(t, config.DefaultConfig().Repo, actual.Repo)
	mock.ExpectationsMet()
}

func TestParseConfig(t *testing.T) {
	assert := require.New(t)
	t.Setenv("HOME", t.TempDir())

	mock := mockgit.NewMockGit(t)
	repoConfig := "haltOnLocalChanges: true\nnewestFirst: true\n"
	err := os.WriteFile(config.RepoConfigFilePath(mock.RootDir()), []byte(repoConfig), 0644)
	assert.NoError(err)
	mock.ExpectGitConfig("revert.autocommit false")

	cfg := ParseConfig(mock)
	assert.False(cfg.Repo.AutoCommit)
	assert.True(cfg.Repo.HaltOnLocalChanges)
	assert.True(cfg.Repo.HaltOnConflict)
	assert.True(cfg.Repo.HaltOnFailure)
	assert.True(cfg.Repo.NewestFirst)
	assert.True(cfg.User.ColorOutput)
	assert.FileExists(config.UserConfigFilePath())
	assert.FileExists(config.RepoConfigFilePath(mock.RootDir()))
	mock.ExpectationsMet()
}
