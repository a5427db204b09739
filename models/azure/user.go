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

// User represents the user resource type
// https://learn.microsoft.com/en-us/graph/api/resources/user?view=graph-rest-1.0
type User struct {
	Entity

	AccountEnabled    bool              `json:"accountEnabled,omitempty"`
	DisplayName       string            `json:"displayName,omitempty"`
	Mail              string            `json:"mail,omitempty"`
	UserPrincipalName string            `json:"userPrincipalName,omitempty"`
	UsageLocation     string            `json:"usageLocation,omitempty"`
	MailNickname      string            `json:"mailNickname,omitempty"`
	AssignedLicenses  []AssignedLicense `json:"assignedLicenses,omitempty"`
}

// AssignedLicense represents the assignedLicense resource type
// https://learn.microsoft.com/en-us/graph/api/resources/assignedlicense?view=graph-rest-1.0
type AssignedLicense struct {
	DisabledPlans []string `json:"disabledPlans,omitempty"`
	SkuId         string   `json:"skuId,omitempty"`
}

// PasswordProfile represents the passwordProfile resource type
// https://learn.microsoft.com/en-us/graph/api/resources/passwordprofile?view=graph-rest-1.0
type PasswordProfile struct {
	Password                      string `json:"password,omitempty"`
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn,omitempty"`
}

// NewUser is the request body for creating a user account.
type NewUser struct {
	AccountEnabled    bool            `json:"accountEnabled"`
	DisplayName       string          `json:"displayName"`
	MailNickname      string          `json:"mailNickname"`
	UserPrincipalName string          `json:"userPrincipalName"`
	UsageLocation     string          `json:"usageLocation,omitempty"`
	PasswordProfile   PasswordProfile `json:"passwordProfile"`
}

// SubscribedSku represents the subscribedSku resource type
// https://learn.microsoft.com/en-us/graph/api/resources/subscribedsku?view=graph-rest-1.0
type SubscribedSku struct {
	Entity

	SkuId         string `json:"skuId,omitempty"`
	SkuPartNumber string `json:"skuPartNumber,omitempty"`
	ConsumedUnits int    `json:"consumedUnits,omitempty"`
}
