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
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

// Identity is the resolved snapshot of one directory account, read fresh at
// the start of every run. The remote system stays the source of truth; the
// snapshot only drives decisions within the run.
type Identity struct {
	Id                string   `json:"id"`
	UserPrincipalName string   `json:"userPrincipalName"`
	Mail              string   `json:"mail,omitempty"`
	DisplayName       string   `json:"displayName,omitempty"`
	AccountEnabled    bool     `json:"accountEnabled"`
	AssignedLicenses  []string `json:"assignedLicenses,omitempty"`

	// Recipient is the paired mail system object; nil when cross
	// resolution failed, which only constrains the conversion stage.
	Recipient *exchange.Recipient `json:"recipient,omitempty"`
}

func newIdentity(user azure.User) *Identity {
	identity := &Identity{
		Id:                user.Id,
		UserPrincipalName: user.UserPrincipalName,
		Mail:              user.Mail,
		DisplayName:       user.DisplayName,
		AccountEnabled:    user.AccountEnabled,
	}
	for _, license := range user.AssignedLicenses {
		identity.AssignedLicenses = append(identity.AssignedLicenses, license.SkuId)
	}
	return identity
}

// Matcher returns the principal matcher for the identity, built from the
// mail address (preferred) and the user principal name.
func (s *Identity) Matcher() Matcher {
	principals := []string{s.Mail, s.UserPrincipalName}
	if s.Recipient != nil {
		principals = append(principals, s.Recipient.PrimarySmtpAddress)
	}
	return NewMatcher(principals...)
}
