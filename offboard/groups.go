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

	"github.com/tenantops/offboarder/enums"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

// sweepGroups reconciles the identity out of all three group models:
// directory groups and roles (identity scoped enumeration), distribution
// groups (tenant wide via the mail system), and unified groups (tenant
// wide, member and owner links swept independently). Individual removal
// failures are recorded and never abort the sweep; only a failure to
// enumerate a whole collection fails the stage.
func (s *Runner) sweepGroups(ctx context.Context, identity *Identity) (Outcome, string, error) {
	var removals []Removal
	matcher := identity.Matcher()

	directoryRemovals, err := s.sweepDirectoryGroups(ctx, identity)
	if err != nil {
		return OutcomeFailed, "", err
	}
	removals = append(removals, directoryRemovals...)

	ownershipRemovals, err := s.sweepOwnedObjects(ctx, identity)
	if err != nil {
		return OutcomeFailed, "", err
	}
	removals = append(removals, ownershipRemovals...)

	distributionRemovals, err := s.sweepDistributionGroups(ctx, identity, matcher)
	if err != nil {
		return OutcomeFailed, "", err
	}
	removals = append(removals, distributionRemovals...)

	unifiedRemovals, err := s.sweepUnifiedGroups(ctx, identity, matcher)
	if err != nil {
		return OutcomeFailed, "", err
	}
	removals = append(removals, unifiedRemovals...)

	outcome, detail := summarizeRemovals(removals, s.DryRun)
	return outcome, detail, nil
}

// sweepDirectoryGroups walks the identity's own transitive membership list
// instead of scanning every group; membership is identity scoped in the
// directory, unlike the other two models.
func (s *Runner) sweepDirectoryGroups(ctx context.Context, identity *Identity) ([]Removal, error) {
	var removals []Removal

	for item := range s.directory.ListUserTransitiveGroups(ctx, identity.Id) {
		if item.Error != nil {
			return nil, fmt.Errorf("listing transitive memberships: %w", item.Error)
		}

		object := item.Ok
		switch object.Type {
		case azure.TypeGroup:
			err := s.mutate(fmt.Sprintf("remove %s from group %s", identity.UserPrincipalName, object.DisplayName), func() error {
				return s.directory.RemoveGroupLink(ctx, object.Id, identity.Id, enums.LinkMember)
			})
			removals = append(removals, Removal{Collection: "directory group", Object: object.DisplayName, Err: err})
		case azure.TypeDirectoryRole:
			err := s.mutate(fmt.Sprintf("remove %s from directory role %s", identity.UserPrincipalName, object.DisplayName), func() error {
				return s.directory.RemoveDirectoryRoleMember(ctx, object.Id, identity.Id)
			})
			removals = append(removals, Removal{Collection: "directory role", Object: object.DisplayName, Err: err})
		default:
			s.log.V(2).Info("skipping membership of unhandled type", "type", object.Type, "object", object.Id)
		}
	}

	return removals, nil
}

func (s *Runner) sweepOwnedObjects(ctx context.Context, identity *Identity) ([]Removal, error) {
	var removals []Removal

	for item := range s.directory.ListUserOwnedObjects(ctx, identity.Id) {
		if item.Error != nil {
			return nil, fmt.Errorf("listing owned objects: %w", item.Error)
		}

		object := item.Ok
		switch object.Type {
		case azure.TypeGroup:
			err := s.mutate(fmt.Sprintf("remove %s as owner of group %s", identity.UserPrincipalName, object.DisplayName), func() error {
				return s.directory.RemoveGroupLink(ctx, object.Id, identity.Id, enums.LinkOwner)
			})
			removals = append(removals, Removal{Collection: "group ownership", Object: object.DisplayName, Err: err})
		case azure.TypeApplication:
			err := s.mutate(fmt.Sprintf("remove %s as owner of application %s", identity.UserPrincipalName, object.DisplayName), func() error {
				return s.directory.RemoveApplicationOwner(ctx, object.Id, identity.Id)
			})
			removals = append(removals, Removal{Collection: "application ownership", Object: object.DisplayName, Err: err})
		default:
			s.log.V(2).Info("skipping owned object of unhandled type", "type", object.Type, "object", object.Id)
		}
	}

	return removals, nil
}

// sweepDistributionGroups enumerates every distribution group in the
// tenant and compares each member against the identity's mail and
// principal name keys. A failure listing one group's members is recorded
// against that group and the sweep moves on.
func (s *Runner) sweepDistributionGroups(ctx context.Context, identity *Identity, matcher Matcher) ([]Removal, error) {
	var removals []Removal

	for item := range s.exchange.ListDistributionGroups(ctx) {
		if item.Error != nil {
			return nil, fmt.Errorf("listing distribution groups: %w", item.Error)
		}

		if removal, found := s.removeDistributionMembership(ctx, identity, matcher, item.Ok); found {
			removals = append(removals, removal)
		}
	}

	return removals, nil
}

func (s *Runner) removeDistributionMembership(ctx context.Context, identity *Identity, matcher Matcher, group exchange.Recipient) (Removal, bool) {
	// Cancelling releases the member pager when a match ends the scan mid
	// stream; otherwise its goroutine stays parked until the run exits.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for member := range s.exchange.ListDistributionGroupMembers(ctx, group.Identity) {
		if member.Error != nil {
			return Removal{Collection: "distribution group", Object: group.DisplayName, Err: member.Error}, true
		}
		if !matcher.MatchesAny(member.Ok.PrimarySmtpAddress, member.Ok.UserPrincipalName) {
			continue
		}

		memberIdentity := member.Ok.Identity
		err := s.mutate(fmt.Sprintf("remove %s from distribution group %s", identity.UserPrincipalName, group.DisplayName), func() error {
			return s.exchange.RemoveDistributionGroupMember(ctx, group.Identity, memberIdentity)
		})
		return Removal{Collection: "distribution group", Object: group.DisplayName, Err: err}, true
	}

	return Removal{}, false
}

// sweepUnifiedGroups enumerates every unified group and sweeps the member
// and owner link collections independently.
func (s *Runner) sweepUnifiedGroups(ctx context.Context, identity *Identity, matcher Matcher) ([]Removal, error) {
	var removals []Removal

	for item := range s.directory.ListUnifiedGroups(ctx) {
		if item.Error != nil {
			return nil, fmt.Errorf("listing unified groups: %w", item.Error)
		}

		group := item.Ok
		for _, link := range []enums.LinkType{enums.LinkMember, enums.LinkOwner} {
			removal, found := s.sweepUnifiedGroupLink(ctx, identity, matcher, group, link)
			if found {
				removals = append(removals, removal)
			}
		}
	}

	return removals, nil
}

func (s *Runner) sweepUnifiedGroupLink(ctx context.Context, identity *Identity, matcher Matcher, group azure.Group, link enums.LinkType) (Removal, bool) {
	// Same release-on-exit contract as the distribution member scan.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	removal := Removal{Collection: "unified group", Object: group.DisplayName, Detail: string(link)}

	for item := range s.directory.ListGroupLinks(ctx, group.Id, link) {
		if item.Error != nil {
			removal.Err = item.Error
			return removal, true
		}

		object := item.Ok
		if object.Id != identity.Id && !matcher.MatchesAny(object.Mail, object.UserPrincipalName) {
			continue
		}

		removal.Err = s.mutate(fmt.Sprintf("remove %s link of %s on unified group %s", link, identity.UserPrincipalName, group.DisplayName), func() error {
			return s.directory.RemoveGroupLink(ctx, group.Id, identity.Id, link)
		})
		return removal, true
	}

	return Removal{}, false
}
