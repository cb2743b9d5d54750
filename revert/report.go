package revert

import (
	"fmt"
	"strings"
)

// NotificationKind is the severity of a notification.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyWarning
	NotifyError
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyWarning:
		return "warning"
	case NotifyError:
		return "error"
	}
	return fmt.Sprintf("NotificationKind(%d)", int(k))
}

// ActionResolveConflicts is attached to reports that leave conflicts behind.
const ActionResolveConflicts = "resolve-conflicts"

// Notification is the consolidated report of one run.
type Notification struct {
	Kind    NotificationKind
	Title   string
	Body    string
	Actions []string
}

const (
	TitleSuccess         = "Revert successful"
	TitleNothingToRevert = "Nothing to revert"
	TitleFailed          = "Revert failed"
	TitleConflicts       = "Reverted with conflicts"
	TitleCommitFailed    = "Revert commit failed"

	MessageLocalChanges       = "Your local changes would be overwritten by revert. Commit your changes or stash them to proceed."
	MessageUnresolved         = "Unresolved conflicts remain in the working tree."
	MessageSucceededForOthers = "However revert succeeded for the following commit(s):"
)

// BuildReport turns the outcomes of a session into one notification.
//  Reverted commits are listed most recently reverted first, unless a
//  conflict was resolved along the way, then they are listed in attempt order.
func BuildReport(s *Session) Notification {
	var succeeded, skipped, problems []Outcome
	hardFailure := false
	conflicts := false
	resolved := false
	for _, o := range s.Outcomes {
		switch o.Kind {
		case Success:
			succeeded = append(succeeded, o)
		case ConflictResolved:
			resolved = true
			succeeded = append(succeeded, o)
		case NothingToRevert:
			skipped = append(skipped, o)
		case LocalChangesBlocked, Failure:
			hardFailure = true
			problems = append(problems, o)
		case ConflictUnresolved:
			conflicts = true
			problems = append(problems, o)
		}
	}

	if len(s.Outcomes) == 1 && len(skipped) == 1 {
		return Notification{
			Kind:  NotifyWarning,
			Title: TitleNothingToRevert,
			Body:  fmt.Sprintf("All changes from %s have already been reverted", skipped[0].Commit.ShortHash),
		}
	}

	n := Notification{Kind: NotifySuccess, Title: TitleSuccess}
	var lines []string

	switch {
	case len(problems) > 0:
		n.Kind = NotifyWarning
		n.Title = TitleConflicts
		if hardFailure {
			n.Kind = NotifyError
			n.Title = TitleFailed
		}
		for _, o := range problems {
			lines = append(lines, o.Commit.String(), problemMessage(o))
		}
		if len(succeeded) > 0 {
			lines = append(lines, MessageSucceededForOthers)
			lines = append(lines, commitLines(succeeded)...)
		}
		if conflicts {
			n.Actions = append(n.Actions, ActionResolveConflicts)
		}

	case len(succeeded) == 0:
		n.Kind = NotifyWarning
		n.Title = TitleNothingToRevert

	case resolved:
		for _, o := range succeeded {
			lines = append(lines, o.Commit.String())
		}

	default:
		lines = append(lines, commitLines(succeeded)...)
	}

	for _, o := range skipped {
		lines = append(lines, fmt.Sprintf("%s wasn't reverted, because all changes have already been reverted.", o.Commit.ShortHash))
	}
	if s.AutoCommit {
		for _, o := range succeeded {
			if !o.Committed {
				lines = append(lines, fmt.Sprintf("%s was reverted but not committed, the changes are staged.", o.Commit.ShortHash))
			}
		}
	}
	if s.CommitFailure != "" {
		n.Kind = NotifyError
		n.Title = TitleCommitFailed
		lines = append(lines, "Commit failed: "+s.CommitFailure)
	}

	n.Body = strings.Join(lines, "\n")
	return n
}

func problemMessage(o Outcome) string {
	switch o.Kind {
	case LocalChangesBlocked:
		return MessageLocalChanges
	case ConflictUnresolved:
		return MessageUnresolved
	}
	return o.Reason
}

func commitLines(outcomes []Outcome) []string {
	lines := make([]string, 0, len(outcomes))
	for i := len(outcomes) - 1; i >= 0; i-- {
		lines = append(lines, outcomes[i].Commit.String())
	}
	return lines
}
