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

package azure

// Group represents the group resource type
// https://learn.microsoft.com/en-us/graph/api/resources/group?view=graph-rest-1.0
type Group struct {
	Entity

	DisplayName     string   `json:"displayName,omitempty"`
	Mail            string   `json:"mail,omitempty"`
	MailEnabled     bool     `json:"mailEnabled,omitempty"`
	SecurityEnabled bool     `json:"securityEnabled,omitempty"`
	GroupTypes      []string `json:"groupTypes,omitempty"`
}

// DirectoryObject is the polymorphic object returned by membership and
// ownership listings; Type carries the @odata.type discriminator.
// https://learn.microsoft.com/en-us/graph/api/resources/directoryobject?view=graph-rest-1.0
type DirectoryObject struct {
	Entity

	Type              string `json:"@odata.type,omitempty"`
	DisplayName       string `json:"displayName,omitempty"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}

const (
	TypeGroup         = "#microsoft.graph.group"
	TypeDirectoryRole = "#microsoft.graph.directoryRole"
	TypeApplication   = "#microsoft.graph.application"
	TypeUser          = "#microsoft.graph.user"
)
