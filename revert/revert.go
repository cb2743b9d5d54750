package revert

import (
	"context"
	"errors"

	"github.com/ejoffe/profiletimer"
	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/git"
	"github.com/ejoffe/revert/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errAborted = errors.New("revert aborted")

// Reverter reverts a list of commits one at a time and reports the result.
type Reverter struct {
	policy       Policy
	executor     Executor
	resolver     ConflictResolver
	dialog       CommitDialog
	notifier     Notifier
	debug        bool
	profiletimer profiletimer.Timer
}

// NewReverter constructs a reverter using the halt policy from cfg.
func NewReverter(cfg *config.Config, executor Executor, resolver ConflictResolver,
	dialog CommitDialog, notifier Notifier) *Reverter {
	return &Reverter{
		policy:       PolicyFromConfig(cfg),
		executor:     executor,
		resolver:     resolver,
		dialog:       dialog,
		notifier:     notifier,
		profiletimer: profiletimer.StartNoopTimer(),
	}
}

// SetPolicy replaces the halt policy.
func (r *Reverter) SetPolicy(policy Policy) {
	r.policy = policy
}

// DebugMode sets the debug mode.
func (r *Reverter) DebugMode(mode bool) {
	r.debug = mode
	if mode {
		r.profiletimer = profiletimer.StartProfileTimer()
	}
}

// DebugPrintSummary prints step timings if debug mode is enabled.
func (r *Reverter) DebugPrintSummary() {
	if r.debug {
		err := r.profiletimer.ShowResults()
		if err != nil {
			log.Warn().Err(err).Msg("unable to show profile results")
		}
	}
}

// Execute reverts commits in the given order. All results, errors included,
//  are reported through the notifier.
func (r *Reverter) Execute(ctx context.Context, commits []git.Commit, autoCommit bool) {
	r.Run(ctx, Request{Commits: commits, AutoCommit: autoCommit})
}

// Run reverts the commits of req in order and returns the finished session.
//  Commits are attempted strictly one after the other since every revert
//  changes the tree the next one is checked against.
//  When ctx is cancelled the batch stops, no report is sent and nil is returned.
func (r *Reverter) Run(ctx context.Context, req Request) *Session {
	session := newSession(req)
	logger := log.With().Str("session", session.ID).Logger()
	r.profiletimer.Step("Revert::Start")

	if len(req.Commits) == 0 {
		logger.Info().Msg("no commits to revert")
		return session
	}

	for _, commit := range req.Commits {
		if ctx.Err() != nil {
			return r.abort(logger, ctx.Err())
		}
		outcome, halt, err := r.revertCommit(ctx, logger, session, commit, req.AutoCommit)
		if err != nil {
			return r.abort(logger, err)
		}
		logger.Debug().
			Str("commit", commit.ShortHash).
			Str("outcome", outcome.Kind.String()).
			Bool("halt", halt).
			Msg("revert outcome")
		session.Outcomes = append(session.Outcomes, outcome)
		r.profiletimer.Step("Revert::" + commit.ShortHash)
		if halt {
			session.Halted = true
			break
		}
	}

	// a halted batch may leave unmerged paths, which git refuses to commit
	if !req.AutoCommit && len(session.Pending) > 0 && !session.Halted {
		err := r.commitPending(ctx, logger, session)
		if err != nil {
			return r.abort(logger, err)
		}
		r.profiletimer.Step("Revert::Commit")
	}

	if r.debug {
		logger.Debug().Msg("session " + pretty.String(session))
	}
	r.notifier.Notify(BuildReport(session))
	r.profiletimer.Step("Revert::End")
	return session
}

func (r *Reverter) abort(logger zerolog.Logger, err error) *Session {
	logger.Warn().Err(err).Msg("revert cancelled, working tree left as is")
	return nil
}

// revertCommit runs the state machine for one commit. It returns the outcome,
//  whether the remaining commits must be skipped, and a non nil error only
//  when the run was cancelled.
func (r *Reverter) revertCommit(ctx context.Context, logger zerolog.Logger, session *Session,
	commit git.Commit, autoCommit bool) (Outcome, bool, error) {

	result, err := r.executor.ApplyRevert(ctx, commit)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, true, errAborted
		}
		logger.Error().Err(err).Str("commit", commit.ShortHash).Msg("revert failed")
		return r.terminal(Outcome{Commit: commit, Kind: Failure, Reason: err.Error()})
	}

	switch result.Status {
	case ApplyNothingToRevert:
		return Outcome{Commit: commit, Kind: NothingToRevert}, false, nil

	case ApplyLocalChangesBlocked:
		return r.terminal(Outcome{Commit: commit, Kind: LocalChangesBlocked, Paths: result.Paths})

	case ApplyConflicted:
		session.Escalated = true
		resolved, err := r.resolver.Resolve(ctx, commit, result.Paths)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{}, true, errAborted
			}
			logger.Warn().Err(err).Str("commit", commit.ShortHash).Msg("conflict resolution failed")
			resolved = false
		}
		if !resolved {
			return r.terminal(Outcome{Commit: commit, Kind: ConflictUnresolved, Paths: result.Paths})
		}
		return r.completeRevert(ctx, logger, session, commit, autoCommit, true)

	case ApplyClean:
		return r.completeRevert(ctx, logger, session, commit, autoCommit, false)
	}

	return r.terminal(Outcome{Commit: commit, Kind: Failure, Reason: "unknown revert status"})
}

func (r *Reverter) terminal(outcome Outcome) (Outcome, bool, error) {
	return outcome, r.policy.halts(outcome.Kind), nil
}

// completeRevert commits or stages a revert whose changes are in the tree.
//  A revert that needed conflict resolution gets its message reviewed
//  before it is committed.
func (r *Reverter) completeRevert(ctx context.Context, logger zerolog.Logger, session *Session,
	commit git.Commit, autoCommit bool, resolved bool) (Outcome, bool, error) {

	outcome := Outcome{Commit: commit, Kind: Success}
	if resolved {
		outcome.Kind = ConflictResolved
	}

	if !autoCommit {
		session.Pending = append(session.Pending, commit)
		return outcome, false, nil
	}

	message := git.RevertMessage(commit)
	if resolved {
		final, accepted, err := r.dialog.ProposeCommit(ctx, message)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{}, true, errAborted
			}
			logger.Warn().Err(err).Msg("commit dialog failed")
			accepted = false
		}
		if !accepted {
			// the resolved revert stays staged, a later revert would mix into it
			logger.Info().Str("commit", commit.ShortHash).Msg("revert commit declined, changes left staged")
			session.Pending = append(session.Pending, commit)
			return outcome, true, nil
		}
		message = final
	}

	err := r.executor.Commit(ctx, message)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, true, errAborted
		}
		logger.Error().Err(err).Str("commit", commit.ShortHash).Msg("revert commit failed")
		return r.terminal(Outcome{Commit: commit, Kind: Failure, Reason: err.Error()})
	}
	outcome.Committed = true
	return outcome, false, nil
}

// commitPending proposes one commit for all staged reverts, pre-filled with
//  the message of the last one.
func (r *Reverter) commitPending(ctx context.Context, logger zerolog.Logger, session *Session) error {
	last := session.Pending[len(session.Pending)-1]
	message, accepted, err := r.dialog.ProposeCommit(ctx, git.RevertMessage(last))
	if err != nil {
		if ctx.Err() != nil {
			return errAborted
		}
		logger.Warn().Err(err).Msg("commit dialog failed")
		accepted = false
	}
	if !accepted {
		logger.Info().Int("pending", len(session.Pending)).Msg("revert commit declined, changes left staged")
		return nil
	}

	err = r.executor.Commit(ctx, message)
	if err != nil {
		if ctx.Err() != nil {
			return errAborted
		}
		logger.Error().Err(err).Msg("revert commit failed")
		session.CommitFailure = err.Error()
		return nil
	}

	for i := range session.Outcomes {
		if session.Outcomes[i].Succeeded() {
			session.Outcomes[i].Committed = true
		}
	}
	session.Pending = nil
	return nil
}
