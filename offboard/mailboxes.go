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
	"context"
	"fmt"

	"github.com/tenantops/offboarder/constants"
	"github.com/tenantops/offboarder/enums"
	"github.com/tenantops/offboarder/models/exchange"
)

// Grant is one permission the identity holds on a shared mailbox,
// normalized across the three permission kinds so the sweep can treat
// them uniformly. Trustee carries whatever string the mail system used
// to record the grant.
type Grant struct {
	Kind    enums.PermissionKind
	Trustee string
}

// sweepMailboxPermissions strips the identity's grants from every shared
// mailbox in the tenant. Each of the three permission kinds is listed
// and removed independently per mailbox, so a failure listing one kind
// does not block the other two.
func (s *Runner) sweepMailboxPermissions(ctx context.Context, identity *Identity) (Outcome, string, error) {
	var removals []Removal
	matcher := identity.Matcher()

	for item := range s.exchange.ListSharedMailboxes(ctx) {
		if item.Error != nil {
			return OutcomeFailed, "", fmt.Errorf("listing shared mailboxes: %w", item.Error)
		}
		removals = append(removals, s.sweepMailbox(ctx, identity, matcher, item.Ok)...)
	}

	outcome, detail := summarizeRemovals(removals, s.DryRun)
	return outcome, detail, nil
}

func (s *Runner) sweepMailbox(ctx context.Context, identity *Identity, matcher Matcher, mailbox exchange.Recipient) []Removal {
	var removals []Removal

	label := mailbox.PrimarySmtpAddress
	if label == "" {
		label = mailbox.Identity
	}

	grants, err := s.fullAccessGrants(ctx, matcher, mailbox)
	if err != nil {
		removals = append(removals, Removal{Collection: "mailbox permission", Object: label, Detail: "FullAccess", Err: err})
	}

	sendAs, err := s.sendAsGrants(ctx, matcher, mailbox)
	if err != nil {
		removals = append(removals, Removal{Collection: "mailbox permission", Object: label, Detail: "SendAs", Err: err})
	}
	grants = append(grants, sendAs...)
	grants = append(grants, s.sendOnBehalfGrants(matcher, mailbox)...)

	for _, grant := range grants {
		err := s.removeGrant(ctx, identity, mailbox, grant)
		removals = append(removals, Removal{Collection: "mailbox permission", Object: label, Detail: string(grant.Kind), Err: err})
	}

	return removals
}

// fullAccessGrants lists the mailbox's access control entries and keeps
// the ones granted to the identity. Inherited and deny entries are not
// removable grants, and the mailbox's own self entry is never a match.
func (s *Runner) fullAccessGrants(ctx context.Context, matcher Matcher, mailbox exchange.Recipient) ([]Grant, error) {
	permissions, err := s.exchange.ListMailboxPermissions(ctx, mailbox.Identity)
	if err != nil {
		return nil, err
	}

	var grants []Grant
	for _, permission := range permissions {
		if permission.IsInherited || permission.Deny || permission.User == constants.SelfTrustee {
			continue
		} else if !permission.HasRight("FullAccess") {
			continue
		} else if !matcher.Matches(permission.User) {
			continue
		}
		grants = append(grants, Grant{Kind: enums.PermissionFullAccess, Trustee: permission.User})
	}
	return grants, nil
}

func (s *Runner) sendAsGrants(ctx context.Context, matcher Matcher, mailbox exchange.Recipient) ([]Grant, error) {
	permissions, err := s.exchange.ListRecipientPermissions(ctx, mailbox.Identity)
	if err != nil {
		return nil, err
	}

	var grants []Grant
	for _, permission := range permissions {
		if !permission.HasRight("SendAs") {
			continue
		} else if !matcher.Matches(permission.Trustee) {
			continue
		}
		grants = append(grants, Grant{Kind: enums.PermissionSendAs, Trustee: permission.Trustee})
	}
	return grants, nil
}

// sendOnBehalfGrants needs no extra call; the delegate list rides on the
// recipient object itself.
func (s *Runner) sendOnBehalfGrants(matcher Matcher, mailbox exchange.Recipient) []Grant {
	var grants []Grant
	for _, trustee := range mailbox.GrantSendOnBehalfTo {
		if matcher.Matches(trustee) {
			grants = append(grants, Grant{Kind: enums.PermissionSendOnBehalf, Trustee: trustee})
		}
	}
	return grants
}

func (s *Runner) removeGrant(ctx context.Context, identity *Identity, mailbox exchange.Recipient, grant Grant) error {
	action := fmt.Sprintf("remove %s grant of %s on mailbox %s", grant.Kind, identity.UserPrincipalName, mailbox.Identity)

	switch grant.Kind {
	case enums.PermissionFullAccess:
		return s.mutate(action, func() error {
			return s.exchange.RemoveMailboxPermission(ctx, mailbox.Identity, grant.Trustee, []string{"FullAccess"})
		})
	case enums.PermissionSendAs:
		return s.mutate(action, func() error {
			return s.exchange.RemoveRecipientPermission(ctx, mailbox.Identity, grant.Trustee)
		})
	case enums.PermissionSendOnBehalf:
		// The delegate list is replaced wholesale, so build the set
		// minus every trustee the matcher claims.
		return s.mutate(action, func() error {
			matcher := identity.Matcher()
			var kept []string
			for _, trustee := range mailbox.GrantSendOnBehalfTo {
				if !matcher.Matches(trustee) {
					kept = append(kept, trustee)
				}
			}
			return s.exchange.SetMailboxSendOnBehalf(ctx, mailbox.Identity, kept)
		})
	default:
		return fmt.Errorf("unhandled permission kind %s", grant.Kind)
	}
}
