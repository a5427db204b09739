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

import "github.com/tenantops/offboarder/constants"

var (
	ConfigFile = Option{
		Name:       "config",
		Shorthand:  "c",
		Usage:      "Location of the configuration file",
		Persistent: true,
		Default:    defaultConfigFile(),
	}

	Verbosity = Option{
		Name:       "verbosity",
		Shorthand:  "v",
		Usage:      "Log verbosity; higher is chattier",
		Persistent: true,
		Default:    0,
	}

	JSONLogs = Option{
		Name:       "json",
		Usage:      "Emit logs as json",
		Persistent: true,
		Default:    false,
	}

	LogFile = Option{
		Name:       "log-file",
		Usage:      "Also write logs to this file",
		Persistent: true,
		Default:    "",
	}

	Proxy = Option{
		Name:       "proxy",
		Usage:      "Forward all requests through this http(s) proxy",
		Persistent: true,
		Default:    "",
	}

	GlobalConfig = []Option{ConfigFile, Verbosity, JSONLogs, LogFile, Proxy}
)

var (
	Tenant = Option{
		Name:       "tenant",
		Shorthand:  "t",
		Usage:      "Tenant id or verified domain of the target tenant",
		Persistent: true,
		Default:    "",
	}

	AppId = Option{
		Name:       "app",
		Shorthand:  "a",
		Usage:      "Application id of the service principal used to authenticate",
		Persistent: true,
		Default:    "",
	}

	ClientSecret = Option{
		Name:       "secret",
		Shorthand:  "s",
		Usage:      "Client secret of the service principal",
		Persistent: true,
		Default:    "",
	}

	ClientCert = Option{
		Name:       "cert",
		Usage:      "Path to the client certificate (pem) for certificate auth",
		Persistent: true,
		Default:    "",
	}

	ClientKey = Option{
		Name:       "key",
		Usage:      "Path to the certificate's private key (pem)",
		Persistent: true,
		Default:    "",
	}

	KeyPassphrase = Option{
		Name:       "keypass",
		Usage:      "Passphrase of the private key, if encrypted",
		Persistent: true,
		Default:    "",
	}

	AuthorityUrl = Option{
		Name:       "auth-url",
		Usage:      "Token authority base url",
		Persistent: true,
		Default:    constants.AuthorityUrl,
	}

	GraphUrl = Option{
		Name:       "graph-url",
		Usage:      "Directory service api base url",
		Persistent: true,
		Default:    constants.GraphUrl,
	}

	ExchangeUrl = Option{
		Name:       "exchange-url",
		Usage:      "Mail system admin api base url",
		Persistent: true,
		Default:    constants.ExchangeUrl,
	}

	AzureConfig = []Option{Tenant, AppId, ClientSecret, ClientCert, ClientKey, KeyPassphrase, AuthorityUrl, GraphUrl, ExchangeUrl}
)

var (
	DryRun = Option{
		Name:      "dry-run",
		Shorthand: "n",
		Usage:     "Report intended changes without performing any remote mutation",
		Default:   false,
	}

	RevokeSessions = Option{
		Name:      "revoke-sessions",
		Shorthand: "r",
		Usage:     "Also revoke the account's refresh tokens and active sessions",
		Default:   false,
	}

	NotifyWebhook = Option{
		Name:      "notify-webhook",
		Shorthand: "w",
		Usage:     "Webhook url to post a completion summary to (best effort)",
		Default:   "",
	}

	OffboardConfig = []Option{DryRun, RevokeSessions, NotifyWebhook}
)

var (
	DisplayName = Option{
		Name:    "display-name",
		Usage:   "Display name for the new account",
		Default: "",
	}

	UsageLocation = Option{
		Name:    "usage-location",
		Usage:   "Two letter usage location required for license assignment",
		Default: "US",
	}

	LicenseSkus = Option{
		Name:    "license-sku",
		Usage:   "License sku part numbers to assign to the new account",
		Default: []string{},
	}

	OnboardConfig = []Option{DisplayName, UsageLocation, LicenseSkus}
)
