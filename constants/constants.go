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

package constants

const (
	AuthorityUrl string = "https://login.microsoftonline.com"
	GraphUrl     string = "https://graph.microsoft.com"
	ExchangeUrl  string = "https://outlook.office365.com"

	GraphApiVersion    string = "v1.0"
	ExchangeApiVersion string = "beta"

	// SelfTrustee is the grant every mailbox carries on itself; the
	// permission sweep must never remove it.
	SelfTrustee string = "NT AUTHORITY\\SELF"
)
