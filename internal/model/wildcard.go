package model

import "strings"

// WildcardMatch reports whether s matches pattern, where '*' matches any
// run of characters (including none) and '?' matches exactly one character.
//
// The pattern is split on '*' into literal segments. The first segment is
// anchored to the start of s unless the pattern begins with '*'; the last
// segment is anchored to the end unless the pattern ends with '*'. Middle
// segments are located left to right from the cursor left by the previous
// match.
func WildcardMatch(s, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return segmentMatches(s, pattern, 0) && len(s) == len(pattern)
	}

	segments := strings.Split(pattern, "*")
	anchorStart := segments[0] != ""
	anchorEnd := segments[len(segments)-1] != ""

	pos := 0
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		last := i == len(segments)-1
		if last && anchorEnd {
			// Final segment must end exactly at the end of s.
			start := len(s) - len(seg)
			return start >= pos && segmentMatches(s, seg, start)
		}
		if i == 0 && anchorStart {
			if !segmentMatches(s, seg, 0) {
				return false
			}
			pos = len(seg)
			continue
		}
		idx := findSegment(s, seg, pos)
		if idx < 0 {
			return false
		}
		pos = idx + len(seg)
	}
	return true
}

// segmentMatches reports whether s[start:start+len(seg)] matches seg,
// treating '?' as a single-character wildcard.
func segmentMatches(s, seg string, start int) bool {
	if start < 0 || start+len(seg) > len(s) {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] != '?' && seg[i] != s[start+i] {
			return false
		}
	}
	return true
}

// findSegment returns the first index >= from at which seg matches s,
// or -1 when it never does.
func findSegment(s, seg string, from int) int {
	for i := from; i+len(seg) <= len(s); i++ {
		if segmentMatches(s, seg, i) {
			return i
		}
	}
	return -1
}
