package git

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Commit has all the git commit info needed to revert it
type Commit struct {
	// CommitHash is the full git commit hash.
	CommitHash string `json:"hash" yaml:"hash"`

	// ShortHash is the abbreviated commit hash used in user facing messages.
	ShortHash string `json:"shortHash" yaml:"shortHash"`

	// Subject is the first line of the commit message.
	Subject string `json:"subject" yaml:"subject"`

	// Message is the full commit message, subject included.
	Message string `json:"message" yaml:"message"`

	// CommitTime is the committer time, used to order commits in history.
	CommitTime time.Time `json:"commitTime" yaml:"commitTime"`
}

// String returns the one line form used in reports: short hash and subject.
func (c Commit) String() string {
	return c.ShortHash + " " + c.Subject
}

// RevertMessage returns the message of the commit that reverts c.
func RevertMessage(c Commit) string {
	return fmt.Sprintf("Revert %s\n\nThis reverts commit %s", c.Subject, c.CommitHash)
}

// ShortHash abbreviates a full commit hash the way git log --oneline does.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// SubjectFromMessage returns the first non empty line of a commit message.
func SubjectFromMessage(message string) string {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// SortNewestFirst orders commits by commit time, most recent first.
//  Commits with the same time keep their relative order.
func SortNewestFirst(commits []Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].CommitTime.After(commits[j].CommitTime)
	})
}
