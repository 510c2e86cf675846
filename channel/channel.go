// Package channel defines the hierarchical key type used to name message
// channels. A channel is a dot-separated path such as "Game.Death.Player";
// broadcasting on a channel also reaches listeners registered on its
// ancestors ("Game.Death", "Game") when those listeners opted in.
package channel

import (
	"strings"

	"github.com/tidwall/match"
)

// Separator joins channel segments.
const Separator = "."

// Channel is a hierarchical channel key.
// Examples: "Game.Death", "UI.Menu.Opened", "Inventory".
//
// Channels are plain comparable values: equality and map-key behavior come
// from the underlying string. The router never creates or validates
// channels; they are caller-supplied.
type Channel string

// String returns the channel as a string.
func (c Channel) String() string {
	return string(c)
}

// Segments returns the channel split by the separator.
func (c Channel) Segments() []string {
	if c == "" {
		return nil
	}
	return strings.Split(string(c), Separator)
}

// SegmentCount returns the number of segments in the channel.
func (c Channel) SegmentCount() int {
	if c == "" {
		return 0
	}
	return strings.Count(string(c), Separator) + 1
}

// Parent returns the parent channel by removing the last segment.
// A single-segment channel has no parent and returns the empty channel.
//
// Example: "Game.Death.Player" -> "Game.Death"
func (c Channel) Parent() Channel {
	s := string(c)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Channel(s[:idx])
}

// HasParent reports whether the channel has at least one ancestor.
func (c Channel) HasParent() bool {
	return strings.Contains(string(c), Separator)
}

// Child returns a child channel by appending a segment.
//
// Example: Channel("Game").Child("Death") -> "Game.Death"
func (c Channel) Child(segment string) Channel {
	if c == "" {
		return Channel(segment)
	}
	return Channel(string(c) + Separator + segment)
}

// Base returns the last segment of the channel.
//
// Example: "Game.Death.Player" -> "Player"
func (c Channel) Base() string {
	s := string(c)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// HasPrefix reports whether the channel is rooted at prefix, matching whole
// segments only: "Game.Death" has prefix "Game" but not "Ga".
func (c Channel) HasPrefix(prefix Channel) bool {
	if prefix == "" {
		return true
	}
	s := string(c)
	p := string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	if len(s) == len(p) {
		return true
	}
	return s[len(p)] == '.'
}

// IsValid reports whether the channel is well formed: non-empty, no leading
// or trailing separator, no empty segments. The router accepts any channel
// value as an opaque key; validity is advisory for callers.
func (c Channel) IsValid() bool {
	s := string(c)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	return !strings.Contains(s, Separator+Separator)
}

// MatchesPattern reports whether the channel matches a wildcard pattern.
// Patterns use '*' for any run of characters and '?' for a single
// character, e.g. "Game.*" matches "Game.Death" and "Game.Death.Player".
// Used by diagnostics trace filters.
func (c Channel) MatchesPattern(pattern string) bool {
	return match.Match(string(c), pattern)
}

// Join joins segments into a channel.
func Join(segments ...string) Channel {
	return Channel(strings.Join(segments, Separator))
}
