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
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/tenantops/offboarder/client"
	"github.com/tenantops/offboarder/client/query"
	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/models/azure"
)

// ErrNotFound means no directory lookup strategy produced an account for
// the supplied identifier. Fatal to that identity's run; other identities
// in a batch continue.
var ErrNotFound = errors.New("identity not found in directory")

// Resolver turns a human supplied identifier into an Identity snapshot.
type Resolver struct {
	directory client.DirectoryClient
	exchange  client.ExchangeClient
	log       logr.Logger
}

func NewResolver(directory client.DirectoryClient, exchange client.ExchangeClient, log logr.Logger) *Resolver {
	return &Resolver{directory: directory, exchange: exchange, log: log}
}

// Resolve looks the identifier up directly first (object id or user
// principal name), then falls back to a filtered search on principal name
// or mail. Multiple filtered matches resolve to the first, by policy, with
// a warning naming every match so an operator can audit the choice.
//
// Only a remote 404 triggers the fallback. Any other lookup failure is a
// failed resolve, not a missing identity; callers distinguish the two via
// ErrNotFound.
func (s *Resolver) Resolve(ctx context.Context, identifier string) (*Identity, error) {
	user, err := s.directory.GetUser(ctx, identifier)
	if err != nil {
		if !rest.IsNotFoundErr(err) {
			return nil, fmt.Errorf("looking up %q: %w", identifier, err)
		}
		s.log.V(1).Info("direct lookup failed, trying filtered search", "identifier", identifier)
		if user, err = s.findUser(ctx, identifier); err != nil {
			return nil, err
		}
	}

	identity := newIdentity(user)
	s.resolveRecipient(ctx, identity)
	return identity, nil
}

func (s *Resolver) findUser(ctx context.Context, identifier string) (azure.User, error) {
	var (
		matches []azure.User
		escaped = strings.ReplaceAll(identifier, "'", "''")
		params  = query.GraphParams{
			Filter: fmt.Sprintf("userPrincipalName eq '%s' or mail eq '%s'", escaped, escaped),
		}
	)

	for item := range s.directory.ListUsers(ctx, params) {
		if item.Error != nil {
			return azure.User{}, fmt.Errorf("searching directory for %q: %w", identifier, item.Error)
		}
		matches = append(matches, item.Ok)
	}

	switch len(matches) {
	case 0:
		return azure.User{}, fmt.Errorf("%w: %s", ErrNotFound, identifier)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, match := range matches {
			ids[i] = match.Id
		}
		s.log.Info("ambiguous identifier matched multiple accounts, acting on first", "identifier", identifier, "matches", ids)
		return matches[0], nil
	}
}

// resolveRecipient cross-resolves the paired mail system object, by
// principal name first and mail address second. Failure is non-fatal and
// only causes the mailbox conversion stage to be skipped.
func (s *Resolver) resolveRecipient(ctx context.Context, identity *Identity) {
	lookups := []string{identity.UserPrincipalName}
	if identity.Mail != "" && !strings.EqualFold(identity.Mail, identity.UserPrincipalName) {
		lookups = append(lookups, identity.Mail)
	}

	for _, lookup := range lookups {
		if recipient, err := s.exchange.GetRecipient(ctx, lookup); err == nil {
			identity.Recipient = &recipient
			return
		} else {
			s.log.V(1).Info("recipient lookup failed", "identifier", lookup, "reason", err.Error())
		}
	}

	s.log.Info("no mail system recipient found; mailbox conversion will be skipped", "user", identity.UserPrincipalName)
}
