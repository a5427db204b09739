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

package enums

// RecipientType mirrors the mail system's RecipientTypeDetails values for
// the recipient classes the orchestrator touches.
type RecipientType string

const (
	RecipientUserMailbox       RecipientType = "UserMailbox"
	RecipientSharedMailbox     RecipientType = "SharedMailbox"
	RecipientRoomMailbox       RecipientType = "RoomMailbox"
	RecipientEquipmentMailbox  RecipientType = "EquipmentMailbox"
	RecipientDistributionGroup RecipientType = "MailUniversalDistributionGroup"
	RecipientSecurityGroup     RecipientType = "MailUniversalSecurityGroup"
)

// MailboxType values accepted by the mail system's type conversion call.
type MailboxType string

const (
	MailboxRegular MailboxType = "Regular"
	MailboxShared  MailboxType = "Shared"
)
