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

package exchange

import "github.com/tenantops/offboarder/enums"

// Recipient is the mail system's view of an addressable object: a mailbox,
// a distribution group, or a mail-enabled directory object. The mail system
// links recipients back to directory identities only loosely, via
// ExternalDirectoryObjectId and address equality.
type Recipient struct {
	Identity                  string              `json:"Identity,omitempty"`
	Guid                      string              `json:"Guid,omitempty"`
	DisplayName               string              `json:"DisplayName,omitempty"`
	PrimarySmtpAddress        string              `json:"PrimarySmtpAddress,omitempty"`
	UserPrincipalName         string              `json:"UserPrincipalName,omitempty"`
	RecipientTypeDetails      enums.RecipientType `json:"RecipientTypeDetails,omitempty"`
	ExternalDirectoryObjectId string              `json:"ExternalDirectoryObjectId,omitempty"`

	// GrantSendOnBehalfTo is a small embedded set of trustee identities,
	// not a queryable permission collection.
	GrantSendOnBehalfTo []string `json:"GrantSendOnBehalfTo,omitempty"`
}

// MailboxPermission is one full-access style grant on a mailbox.
type MailboxPermission struct {
	Identity     string   `json:"Identity,omitempty"`
	User         string   `json:"User,omitempty"`
	AccessRights []string `json:"AccessRights,omitempty"`
	IsInherited  bool     `json:"IsInherited,omitempty"`
	Deny         bool     `json:"Deny,omitempty"`
}

// RecipientPermission is one send-as style grant on a recipient. The mail
// system names the grantee Trustee here but User on MailboxPermission; the
// offboard package folds both shapes into one grant type at the boundary.
type RecipientPermission struct {
	Identity     string   `json:"Identity,omitempty"`
	Trustee      string   `json:"Trustee,omitempty"`
	AccessRights []string `json:"AccessRights,omitempty"`
}

// HasRight reports whether the grant carries the named access right.
func (s MailboxPermission) HasRight(right string) bool {
	for _, r := range s.AccessRights {
		if r == right {
			return true
		}
	}
	return false
}

// HasRight reports whether the grant carries the named access right.
func (s RecipientPermission) HasRight(right string) bool {
	for _, r := range s.AccessRights {
		if r == right {
			return true
		}
	}
	return false
}
