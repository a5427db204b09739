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

import (
	"fmt"
	"strings"
)

// Removal records one attempted removal of a membership, ownership or
// permission during a sweep. A non-nil Err marks a removal that failed but
// did not abort the sweep.
type Removal struct {
	Collection string `json:"collection"`
	Object     string `json:"object"`
	Detail     string `json:"detail,omitempty"`
	Err        error  `json:"-"`
}

func (s Removal) label() string {
	if s.Detail != "" {
		return fmt.Sprintf("%s %s", s.Object, s.Detail)
	}
	return s.Object
}

// summarizeRemovals folds a sweep's removal records into a stage outcome
// and a human readable detail line.
func summarizeRemovals(removals []Removal, dryRun bool) (Outcome, string) {
	var removed, failed []string

	for _, removal := range removals {
		if removal.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", removal.label(), removal.Err))
		} else {
			removed = append(removed, removal.label())
		}
	}

	verb := "removed"
	if dryRun {
		verb = "would remove"
	}

	switch {
	case len(removals) == 0:
		return OutcomeApplied, fmt.Sprintf("0 %s", verb)
	case len(failed) == 0:
		return OutcomeApplied, fmt.Sprintf("%d %s: %s", len(removed), verb, strings.Join(removed, ", "))
	default:
		detail := fmt.Sprintf("%d %s, %d failed: %s", len(removed), verb, len(failed), strings.Join(failed, "; "))
		if len(removed) > 0 {
			detail = fmt.Sprintf("%d %s: %s; %d failed: %s", len(removed), verb, strings.Join(removed, ", "), len(failed), strings.Join(failed, "; "))
		}
		return OutcomeFailed, detail
	}
}
