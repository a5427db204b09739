// Copyright (C) 2025 Tenant Ops, Inc.
//
// This file is part of Offboarder.
//
// Offboarder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Offboarder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package offboard

import "strings"

// NormalizeKey converts a principal representation (smtp address, user
// principal name, trustee string) into the canonical comparison key. It
// lower-cases and strips nothing else, so two shapes of the same principal
// compare equal only when the underlying string matches; a trustee string
// like `DOMAIN\user` never equals the principal's smtp address. Callers
// must prefer address shaped inputs where the remote system offers them.
func NormalizeKey(principal string) string {
	return strings.ToLower(principal)
}

// Matcher tests candidate principals against a fixed key set by exact
// normalized equality. Substring or prefix matching is deliberately
// impossible here; a sweep must never remove a different identity.
type Matcher struct {
	keys []string
}

// NewMatcher builds a matcher over the given principals, ignoring empties.
func NewMatcher(principals ...string) Matcher {
	var keys []string
	for _, principal := range principals {
		if principal != "" {
			keys = append(keys, NormalizeKey(principal))
		}
	}
	return Matcher{keys: keys}
}

// Matches reports whether the candidate normalizes equal to any key.
func (s Matcher) Matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	key := NormalizeKey(candidate)
	for _, known := range s.keys {
		if known == key {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any candidate matches.
func (s Matcher) MatchesAny(candidates ...string) bool {
	for _, candidate := range candidates {
		if s.Matches(candidate) {
			return true
		}
	}
	return false
}
