package git

import (
	"strings"
)

// ConflictMarker starts the "ours" section of a conflicted hunk.
const ConflictMarker = "<<<<<<< "

// ParseNameList splits the output of a --name-only style command into paths.
func ParseNameList(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// OverlappingPaths returns the paths present in both lists, in the order of a.
func OverlappingPaths(a []string, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, p := range b {
		set[p] = true
	}
	var overlap []string
	for _, p := range a {
		if set[p] {
			overlap = append(overlap, p)
			delete(set, p)
		}
	}
	return overlap
}

// HasConflictMarkers reports whether content still contains a conflict hunk.
func HasConflictMarkers(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, ConflictMarker) {
			return true
		}
	}
	return false
}
