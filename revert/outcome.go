package revert

import (
	"fmt"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git"
	"github.com/google/uuid"
)

// OutcomeKind is the terminal state of reverting one commit.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	NothingToRevert
	LocalChangesBlocked
	ConflictUnresolved
	ConflictResolved
	Failure
)

var outcomeKindNames = map[OutcomeKind]string{
	Success:             "success",
	NothingToRevert:     "nothingToRevert",
	LocalChangesBlocked: "localChangesBlocked",
	ConflictUnresolved:  "conflictUnresolved",
	ConflictResolved:    "conflictResolved",
	Failure:             "failure",
}

func (k OutcomeKind) String() string {
	name, ok := outcomeKindNames[k]
	if !ok {
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
	return name
}

// MarshalText makes reports carry the kind name instead of a number.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of reverting one commit.
type Outcome struct {
	Commit git.Commit  `json:"commit" yaml:"commit"`
	Kind   OutcomeKind `json:"kind" yaml:"kind"`

	// Reason is the failure message for Failure outcomes.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Paths are the blocking or conflicted paths.
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Committed is true once a revert commit containing this revert exists.
	Committed bool `json:"committed" yaml:"committed"`
}

// Succeeded is true when the inverse changes are in the working tree.
func (o Outcome) Succeeded() bool {
	return o.Kind == Success || o.Kind == ConflictResolved
}

// Request is an ordered list of commits to revert.
type Request struct {
	Commits    []git.Commit
	AutoCommit bool
}

// Session accumulates the outcomes of one run.
type Session struct {
	ID         string    `json:"id" yaml:"id"`
	AutoCommit bool      `json:"autoCommit" yaml:"autoCommit"`
	Outcomes   []Outcome `json:"outcomes" yaml:"outcomes"`

	// Escalated is true when any conflict was handed to the resolver.
	Escalated bool `json:"escalated" yaml:"escalated"`

	// Halted is true when a terminal failure stopped the batch early.
	Halted bool `json:"halted" yaml:"halted"`

	// Pending are reverts staged but not committed yet.
	Pending []git.Commit `json:"pending,omitempty" yaml:"pending,omitempty"`

	// CommitFailure is set when the final commit step failed.
	CommitFailure string `json:"commitFailure,omitempty" yaml:"commitFailure,omitempty"`
}

func newSession(req Request) *Session {
	return &Session{
		ID:         uuid.New().String()[:8],
		AutoCommit: req.AutoCommit,
	}
}

// Policy decides which terminal failures stop the remaining batch.
type Policy struct {
	HaltOnLocalChanges bool
	HaltOnConflict     bool
	HaltOnFailure      bool
}

// DefaultPolicy stops on unresolved conflicts and failures and moves on
//  after commits blocked by local changes.
func DefaultPolicy() Policy {
	return Policy{
		HaltOnLocalChanges: false,
		HaltOnConflict:     true,
		HaltOnFailure:      true,
	}
}

// PolicyFromConfig reads the halt flags from the repo config.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		HaltOnLocalChanges: cfg.Repo.HaltOnLocalChanges,
		HaltOnConflict:     cfg.Repo.HaltOnConflict,
		HaltOnFailure:      cfg.Repo.HaltOnFailure,
	}
}

func (p Policy) halts(kind OutcomeKind) bool {
	switch kind {
	case LocalChangesBlocked:
		return p.HaltOnLocalChanges
	case ConflictUnresolved:
		return p.HaltOnConflict
	case Failure:
		return p.HaltOnFailure
	}
	return false
}
