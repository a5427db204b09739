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

package rest

import "time"

// tokenExpiryBuffer forces a refresh slightly before the authority's stated
// expiry so an in-flight request cannot ride an expiring token.
const tokenExpiryBuffer = 60 * time.Second

// Token is an OAuth2 access token issued by the tenant authority.
type Token struct {
	AccessToken  string         `json:"access_token"`
	ExpiresIn    IntOrStringInt `json:"expires_in"`
	ExtExpiresIn IntOrStringInt `json:"ext_expires_in"`
	TokenType    string         `json:"token_type"`

	expires time.Time
}

// IsExpired reports whether the token needs to be refreshed before use.
func (s Token) IsExpired() bool {
	if s.AccessToken == "" {
		return true
	}
	return time.Now().After(s.expires)
}

// String returns the Authorization header value for the token.
func (s Token) String() string {
	return s.TokenType + " " + s.AccessToken
}

func (s *Token) setExpiry(issued time.Time) {
	s.expires = issued.Add(time.Duration(s.ExpiresIn)*time.Second - tokenExpiryBuffer)
}
