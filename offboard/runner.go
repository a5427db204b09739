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

// Package offboard implements the deprovisioning orchestrator: identity
// resolution, the ordered stage sequence, and the tenant wide group and
// mailbox permission sweeps.
//
// The sequence is a best effort saga, not a transaction. A failed stage is
// recorded and the run continues, because a half offboarded account costs
// less than aborting with its licenses still assigned. Every stage is safe
// to re-run; a failed run is retried by simply invoking it again.
package offboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/tenantops/offboarder/client"
	"github.com/tenantops/offboarder/enums"
)

// Stage names, in execution order.
const (
	StageResolve      = "resolve identity"
	StageDisable      = "disable account"
	StageRevoke       = "revoke sessions"
	StageLicenses     = "remove licenses"
	StageGroups       = "group membership sweep"
	StageMailboxPerms = "mailbox permission sweep"
	StageConvert      = "convert mailbox to shared"
	StageNotify       = "notify"
)

// Notifier posts a free text completion message to a destination. Failures
// are the caller's to swallow.
type Notifier interface {
	Post(ctx context.Context, destination string, body string) error
}

// Runner executes the offboarding sequence for one identity at a time.
type Runner struct {
	directory client.DirectoryClient
	exchange  client.ExchangeClient
	notifier  Notifier
	log       logr.Logger

	// DryRun gates every remote mutation; the run then only reports the
	// actions it would have taken.
	DryRun bool

	// RevokeSessions opts the run in to the session revocation stage.
	RevokeSessions bool

	// NotifyDestination receives the completion summary; empty disables
	// notification.
	NotifyDestination string
}

func NewRunner(directory client.DirectoryClient, exchange client.ExchangeClient, notifier Notifier, log logr.Logger) *Runner {
	return &Runner{
		directory: directory,
		exchange:  exchange,
		notifier:  notifier,
		log:       log,
	}
}

type stageFunc func(ctx context.Context, identity *Identity) (Outcome, string, error)

// Offboard runs the full stage sequence against one identifier and returns
// the per-stage audit record. It never returns an error; resolution
// failure is recorded in the result and flagged via RunResult.NotFound.
func (s *Runner) Offboard(ctx context.Context, identifier string) *RunResult {
	result := &RunResult{Identifier: identifier}

	identity, err := NewResolver(s.directory, s.exchange, s.log).Resolve(ctx, identifier)
	if err != nil {
		result.NotFound = errors.Is(err, ErrNotFound)
		result.record(StageResult{Name: StageResolve, Outcome: OutcomeFailed, Detail: err.Error()})
		return result
	}
	result.Identity = identity

	stages := []struct {
		name string
		run  stageFunc
	}{
		{StageDisable, s.disableAccount},
		{StageRevoke, s.revokeSessions},
		{StageLicenses, s.removeLicenses},
		{StageGroups, s.sweepGroups},
		{StageMailboxPerms, s.sweepMailboxPermissions},
		{StageConvert, s.convertMailbox},
	}

	for _, stage := range stages {
		log := s.log.WithValues("stage", stage.name, "user", identity.UserPrincipalName)
		log.V(1).Info("running stage")

		outcome, detail, err := stage.run(ctx, identity)
		if err != nil {
			outcome = OutcomeFailed
			detail = err.Error()
			log.Error(err, "stage failed, continuing with next stage")
		}
		result.record(StageResult{Name: stage.name, Outcome: outcome, Detail: detail})
	}

	outcome, detail := s.notify(ctx, result)
	result.record(StageResult{Name: StageNotify, Outcome: outcome, Detail: detail, BestEffort: true})

	return result
}

// mutate gates a remote write behind the dry-run flag.
func (s *Runner) mutate(action string, fn func() error) error {
	if s.DryRun {
		s.log.Info("dry run, skipping mutation", "action", action)
		return nil
	}
	return fn()
}

// disableAccount blocks sign-in. Idempotent: disabling a disabled account
// succeeds.
func (s *Runner) disableAccount(ctx context.Context, identity *Identity) (Outcome, string, error) {
	detail := "account disabled"
	if s.DryRun {
		detail = "account would be disabled"
	}
	if !identity.AccountEnabled {
		detail = "account already disabled"
	}

	if err := s.mutate("disable account "+identity.UserPrincipalName, func() error {
		return s.directory.SetAccountEnabled(ctx, identity.Id, false)
	}); err != nil {
		return OutcomeFailed, "", err
	}

	identity.AccountEnabled = false
	return OutcomeApplied, detail, nil
}

func (s *Runner) revokeSessions(ctx context.Context, identity *Identity) (Outcome, string, error) {
	if !s.RevokeSessions {
		return OutcomeSkipped, "session revocation not requested", nil
	}

	if err := s.mutate("revoke sessions of "+identity.UserPrincipalName, func() error {
		return s.directory.RevokeSessions(ctx, identity.Id)
	}); err != nil {
		return OutcomeFailed, "", err
	}
	if s.DryRun {
		return OutcomeApplied, "sessions would be revoked", nil
	}
	return OutcomeApplied, "sessions revoked", nil
}

// removeLicenses drops every currently assigned license in one call.
// Applied with zero removed when the account holds none.
func (s *Runner) removeLicenses(ctx context.Context, identity *Identity) (Outcome, string, error) {
	skus := identity.AssignedLicenses
	if len(skus) == 0 {
		return OutcomeApplied, "0 removed", nil
	}

	if err := s.mutate("remove assigned licenses of "+identity.UserPrincipalName, func() error {
		return s.directory.AssignLicense(ctx, identity.Id, nil, skus)
	}); err != nil {
		return OutcomeFailed, "", err
	}

	identity.AssignedLicenses = nil
	if s.DryRun {
		return OutcomeApplied, pluralize(len(skus), "would be removed"), nil
	}
	return OutcomeApplied, pluralize(len(skus), "removed"), nil
}

// convertMailbox turns the personal mailbox into a license free shared
// mailbox. Mailboxes of unexpected types are left untouched and reported,
// on the grounds that the orchestrator must not mutate what it does not
// understand.
func (s *Runner) convertMailbox(ctx context.Context, identity *Identity) (Outcome, string, error) {
	if identity.Recipient == nil {
		return OutcomeSkipped, "no mail system recipient resolved", nil
	}

	switch identity.Recipient.RecipientTypeDetails {
	case enums.RecipientSharedMailbox:
		return OutcomeApplied, "mailbox already shared", nil
	case enums.RecipientUserMailbox:
		if err := s.mutate("convert mailbox "+identity.Recipient.PrimarySmtpAddress+" to shared", func() error {
			return s.exchange.SetMailboxType(ctx, identity.Recipient.Identity, enums.MailboxShared)
		}); err != nil {
			return OutcomeFailed, "", err
		}
		if s.DryRun {
			return OutcomeApplied, "mailbox would be converted to shared", nil
		}
		return OutcomeApplied, "mailbox converted to shared", nil
	default:
		detail := "unexpected recipient type " + string(identity.Recipient.RecipientTypeDetails) + ", left untouched"
		s.log.Info("refusing to convert mailbox of unexpected type", "user", identity.UserPrincipalName, "type", identity.Recipient.RecipientTypeDetails)
		return OutcomeFailed, detail, nil
	}
}

// notify posts the completion summary. Best effort; a failure here is
// logged and excluded from the run's exit signal.
func (s *Runner) notify(ctx context.Context, result *RunResult) (Outcome, string) {
	if s.notifier == nil || s.NotifyDestination == "" {
		return OutcomeSkipped, "no notification destination configured"
	}

	if s.DryRun {
		return OutcomeApplied, "summary would be posted"
	}

	if err := s.notifier.Post(ctx, s.NotifyDestination, result.Summary()); err != nil {
		s.log.Error(err, "completion notification failed")
		return OutcomeFailed, err.Error()
	}
	return OutcomeApplied, "summary posted"
}

func pluralize(count int, verb string) string {
	return fmt.Sprintf("%d %s", count, verb)
}
