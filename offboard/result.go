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

// Outcome is the terminal state of one stage.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// StageResult records how one stage ended. BestEffort marks stages whose
// failure never changes the run's exit signal.
type StageResult struct {
	Name       string  `json:"name"`
	Outcome    Outcome `json:"outcome"`
	Detail     string  `json:"detail,omitempty"`
	BestEffort bool    `json:"bestEffort,omitempty"`
}

// RunResult is the audit artifact of one offboarding run. The run has no
// single terminal status; callers inspect the ordered stage outcomes to
// tell a fully offboarded identity from one needing manual follow-up.
type RunResult struct {
	Identifier string        `json:"identifier"`
	Identity   *Identity     `json:"identity,omitempty"`
	NotFound   bool          `json:"notFound,omitempty"`
	Stages     []StageResult `json:"stages"`
}

// Failed reports whether any stage that counts toward the exit signal
// failed.
func (s *RunResult) Failed() bool {
	for _, stage := range s.Stages {
		if stage.Outcome == OutcomeFailed && !stage.BestEffort {
			return true
		}
	}
	return false
}

// Stage returns the result of the named stage, if it ran.
func (s *RunResult) Stage(name string) (StageResult, bool) {
	for _, stage := range s.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return StageResult{}, false
}

func (s *RunResult) record(stage StageResult) {
	s.Stages = append(s.Stages, stage)
}

// Summary renders a short human readable digest of the run, used for the
// completion notification.
func (s *RunResult) Summary() string {
	var b strings.Builder

	subject := s.Identifier
	if s.Identity != nil {
		subject = s.Identity.UserPrincipalName
	}
	fmt.Fprintf(&b, "offboarding %s:", subject)
	for _, stage := range s.Stages {
		fmt.Fprintf(&b, "\n- %s: %s", stage.Name, stage.Outcome)
		if stage.Detail != "" {
			fmt.Fprintf(&b, " (%s)", stage.Detail)
		}
	}
	return b.String()
}
