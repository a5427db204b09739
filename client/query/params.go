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

package query

import (
	"fmt"
	"strings"
)

type Params interface {
	AsMap() map[string]string
	NeedsEventualConsistencyHeaderFlag() bool
}

// GraphParams are the OData query options accepted by the directory and
// mail system collection endpoints.
// https://learn.microsoft.com/en-us/graph/query-parameters
type GraphParams struct {
	Count   bool
	Expand  string
	Filter  string
	Orderby string
	Search  string
	Select  []string
	Skip    int
	Top     int32
}

func (s GraphParams) AsMap() map[string]string {
	params := make(map[string]string)

	if s.Count {
		params["$count"] = "true"
	}
	if s.Expand != "" {
		params["$expand"] = s.Expand
	}
	if s.Filter != "" {
		params["$filter"] = s.Filter
	}
	if s.Orderby != "" {
		params["$orderby"] = s.Orderby
	}
	if s.Search != "" {
		params["$search"] = s.Search
	}
	if len(s.Select) > 0 {
		params["$select"] = strings.Join(s.Select, ",")
	}
	if s.Skip > 0 {
		params["$skip"] = fmt.Sprintf("%d", s.Skip)
	}
	if s.Top > 0 {
		params["$top"] = fmt.Sprintf("%d", s.Top)
	}

	return params
}

// NeedsEventualConsistencyHeaderFlag reports whether the request uses an
// advanced query capability that requires the ConsistencyLevel header.
// https://learn.microsoft.com/en-us/graph/aad-advanced-queries
func (s GraphParams) NeedsEventualConsistencyHeaderFlag() bool {
	return s.Count || s.Search != "" || s.Orderby != ""
}
