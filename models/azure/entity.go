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

// Entity represents the base directory entity
// https://learn.microsoft.com/en-us/graph/api/resources/entity?view=graph-rest-1.0
type Entity struct {
	Id string `json:"id,omitempty"`
}

// Page is one page of a collection response; NextLink carries the opaque
// continuation URL when more pages remain.
type Page[T any] struct {
	Context  string `json:"@odata.context,omitempty"`
	Count    int    `json:"@odata.count,omitempty"`
	NextLink string `json:"@odata.nextLink,omitempty"`
	Value    []T    `json:"value"`
}
