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

package offboard

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/tenantops/offboarder/client"
	"github.com/tenantops/offboarder/models/azure"
)

// Onboarder provisions a new account: the reverse of the offboarding
// run, kept small on purpose. It creates the account with a generated
// one-time password and assigns the requested license SKUs.
type Onboarder struct {
	directory client.DirectoryClient
	log       logr.Logger

	DryRun bool
}

func NewOnboarder(directory client.DirectoryClient, log logr.Logger) *Onboarder {
	return &Onboarder{directory: directory, log: log}
}

// OnboardResult reports what was provisioned. The generated password is
// surfaced exactly once, here, and never logged.
type OnboardResult struct {
	Id                string   `json:"id"`
	UserPrincipalName string   `json:"userPrincipalName"`
	DisplayName       string   `json:"displayName"`
	Password          string   `json:"password,omitempty"`
	AssignedSkus      []string `json:"assignedSkus,omitempty"`
}

func (s *Onboarder) Onboard(ctx context.Context, userPrincipalName, displayName, usageLocation string, skuPartNumbers []string) (*OnboardResult, error) {
	licenses, err := s.resolveSkus(ctx, skuPartNumbers)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	newUser := azure.NewUser{
		AccountEnabled:    true,
		DisplayName:       displayName,
		MailNickname:      mailNickname(userPrincipalName),
		UserPrincipalName: userPrincipalName,
		UsageLocation:     usageLocation,
		PasswordProfile: azure.PasswordProfile{
			ForceChangePasswordNextSignIn: true,
			Password:                      password,
		},
	}

	if s.DryRun {
		s.log.Info("dry run: would create account", "upn", userPrincipalName, "skus", skuPartNumbers)
		return &OnboardResult{
			UserPrincipalName: userPrincipalName,
			DisplayName:       displayName,
			AssignedSkus:      skuPartNumbers,
		}, nil
	}

	user, err := s.directory.CreateUser(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("creating account %s: %w", userPrincipalName, err)
	}
	s.log.Info("account created", "upn", user.UserPrincipalName, "id", user.Id)

	result := &OnboardResult{
		Id:                user.Id,
		UserPrincipalName: user.UserPrincipalName,
		DisplayName:       user.DisplayName,
		Password:          password,
	}

	if len(licenses) > 0 {
		if err := s.directory.AssignLicense(ctx, user.Id, licenses, nil); err != nil {
			return result, fmt.Errorf("assigning licenses to %s: %w", userPrincipalName, err)
		}
		result.AssignedSkus = skuPartNumbers
		s.log.Info("licenses assigned", "upn", user.UserPrincipalName, "skus", skuPartNumbers)
	}

	return result, nil
}

// resolveSkus maps human readable SKU part numbers to the tenant's
// subscribed SKU ids. Unknown part numbers fail fast, before any account
// is created.
func (s *Onboarder) resolveSkus(ctx context.Context, skuPartNumbers []string) ([]azure.AssignedLicense, error) {
	if len(skuPartNumbers) == 0 {
		return nil, nil
	}

	byPartNumber := map[string]string{}
	for item := range s.directory.ListSubscribedSkus(ctx) {
		if item.Error != nil {
			return nil, fmt.Errorf("listing subscribed SKUs: %w", item.Error)
		}
		byPartNumber[strings.ToUpper(item.Ok.SkuPartNumber)] = item.Ok.SkuId
	}

	var licenses []azure.AssignedLicense
	for _, partNumber := range skuPartNumbers {
		skuId, found := byPartNumber[strings.ToUpper(partNumber)]
		if !found {
			return nil, fmt.Errorf("tenant has no subscription for SKU %s", partNumber)
		}
		licenses = append(licenses, azure.AssignedLicense{SkuId: skuId})
	}
	return licenses, nil
}

func mailNickname(userPrincipalName string) string {
	local, _, found := strings.Cut(userPrincipalName, "@")
	if !found || local == "" {
		return userPrincipalName
	}
	return local
}

func generatePassword() (string, error) {
	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
