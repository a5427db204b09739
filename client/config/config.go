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

package config

import "strings"

// Config carries the values a REST client needs to authenticate against one
// tenant. Credentials are either a client secret or a certificate and key
// pair; when both are present the certificate wins.
type Config struct {
	ApplicationId string
	Authority     string
	ClientSecret  string
	ClientCert    string
	ClientKey     string
	KeyPassphrase string
	ProxyUrl      string
	Tenant        string
}

// AuthorityUrl returns the token authority base without a trailing slash.
func (s Config) AuthorityUrl() string {
	return strings.TrimSuffix(s.Authority, "/")
}

// UseCertAuth reports whether certificate credentials were supplied.
func (s Config) UseCertAuth() bool {
	return s.ClientCert != "" && s.ClientKey != ""
}
