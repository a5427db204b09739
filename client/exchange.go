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

package client

import (
	"context"
	"fmt"

	"github.com/tenantops/offboarder/client/config"
	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/constants"
	"github.com/tenantops/offboarder/enums"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

// ExchangeClient defines the methods to interface with the mail system's
// admin endpoint. The endpoint is command shaped rather than resource
// shaped, so every method maps onto one admin cmdlet invocation.
type ExchangeClient interface {
	GetRecipient(ctx context.Context, identifier string) (exchange.Recipient, error)
	ListDistributionGroups(ctx context.Context) <-chan AzureResult[exchange.Recipient]
	ListDistributionGroupMembers(ctx context.Context, identity string) <-chan AzureResult[exchange.Recipient]
	RemoveDistributionGroupMember(ctx context.Context, groupIdentity string, memberIdentity string) error
	ListSharedMailboxes(ctx context.Context) <-chan AzureResult[exchange.Recipient]
	ListMailboxPermissions(ctx context.Context, identity string) ([]exchange.MailboxPermission, error)
	RemoveMailboxPermission(ctx context.Context, identity string, trustee string, accessRights []string) error
	ListRecipientPermissions(ctx context.Context, identity string) ([]exchange.RecipientPermission, error)
	RemoveRecipientPermission(ctx context.Context, identity string, trustee string) error
	SetMailboxSendOnBehalf(ctx context.Context, identity string, trustees []string) error
	SetMailboxType(ctx context.Context, identity string, mailboxType enums.MailboxType) error
	CloseIdleConnections()
}

// NewExchangeClient creates an ExchangeClient against the given admin api
// url for one tenant.
func NewExchangeClient(apiUrl string, config config.Config) (ExchangeClient, error) {
	if restClient, err := rest.NewRestClient(apiUrl, config); err != nil {
		return nil, err
	} else {
		return &exchangeClient{
			admin:    restClient,
			basePath: fmt.Sprintf("/adminapi/%s/%s", constants.ExchangeApiVersion, config.Tenant),
		}, nil
	}
}

type exchangeClient struct {
	admin    rest.RestClient
	basePath string
}

type cmdletInput struct {
	CmdletName string                 `json:"CmdletName"`
	Parameters map[string]interface{} `json:"Parameters"`
}

type cmdletBody struct {
	CmdletInput cmdletInput `json:"CmdletInput"`
}

func command(name string, parameters map[string]interface{}) cmdletBody {
	if parameters == nil {
		parameters = map[string]interface{}{}
	}
	return cmdletBody{CmdletInput: cmdletInput{CmdletName: name, Parameters: parameters}}
}

func (s *exchangeClient) invokePath() string {
	return s.basePath + "/InvokeCommand"
}

// invoke runs a cmdlet whose result is discarded.
func (s *exchangeClient) invoke(ctx context.Context, body cmdletBody) error {
	if res, err := s.admin.Post(ctx, s.invokePath(), body, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// invokeList runs a cmdlet and collects its full, unpaged result set.
func invokeList[T any](s *exchangeClient, ctx context.Context, body cmdletBody) ([]T, error) {
	var list azure.Page[T]

	if res, err := s.admin.Post(ctx, s.invokePath(), body, nil, nil); err != nil {
		return nil, err
	} else if err := rest.Decode(res.Body, &list); err != nil {
		return nil, err
	} else {
		return list.Value, nil
	}
}

// invokeStream runs a cmdlet whose result set pages tenant wide.
func invokeStream[T any](s *exchangeClient, ctx context.Context, body cmdletBody) <-chan AzureResult[T] {
	out := make(chan AzureResult[T])
	go postObjectList[T](s.admin, ctx, s.invokePath(), body, out)
	return out
}

func (s *exchangeClient) GetRecipient(ctx context.Context, identifier string) (exchange.Recipient, error) {
	recipients, err := invokeList[exchange.Recipient](s, ctx, command("Get-Recipient", map[string]interface{}{
		"Identity": identifier,
	}))
	if err != nil {
		return exchange.Recipient{}, err
	}
	if len(recipients) == 0 {
		return exchange.Recipient{}, fmt.Errorf("recipient %q not found", identifier)
	}
	return recipients[0], nil
}

func (s *exchangeClient) ListDistributionGroups(ctx context.Context) <-chan AzureResult[exchange.Recipient] {
	return invokeStream[exchange.Recipient](s, ctx, command("Get-DistributionGroup", map[string]interface{}{
		"ResultSize": "Unlimited",
	}))
}

func (s *exchangeClient) ListDistributionGroupMembers(ctx context.Context, identity string) <-chan AzureResult[exchange.Recipient] {
	return invokeStream[exchange.Recipient](s, ctx, command("Get-DistributionGroupMember", map[string]interface{}{
		"Identity":   identity,
		"ResultSize": "Unlimited",
	}))
}

func (s *exchangeClient) RemoveDistributionGroupMember(ctx context.Context, groupIdentity string, memberIdentity string) error {
	return s.invoke(ctx, command("Remove-DistributionGroupMember", map[string]interface{}{
		"Identity": groupIdentity,
		"Member":   memberIdentity,
		"Confirm":  false,
	}))
}

func (s *exchangeClient) ListSharedMailboxes(ctx context.Context) <-chan AzureResult[exchange.Recipient] {
	return invokeStream[exchange.Recipient](s, ctx, command("Get-Mailbox", map[string]interface{}{
		"RecipientTypeDetails": string(enums.RecipientSharedMailbox),
		"ResultSize":           "Unlimited",
	}))
}

func (s *exchangeClient) ListMailboxPermissions(ctx context.Context, identity string) ([]exchange.MailboxPermission, error) {
	return invokeList[exchange.MailboxPermission](s, ctx, command("Get-MailboxPermission", map[string]interface{}{
		"Identity": identity,
	}))
}

func (s *exchangeClient) RemoveMailboxPermission(ctx context.Context, identity string, trustee string, accessRights []string) error {
	return s.invoke(ctx, command("Remove-MailboxPermission", map[string]interface{}{
		"Identity":     identity,
		"User":         trustee,
		"AccessRights": accessRights,
		"Confirm":      false,
	}))
}

func (s *exchangeClient) ListRecipientPermissions(ctx context.Context, identity string) ([]exchange.RecipientPermission, error) {
	return invokeList[exchange.RecipientPermission](s, ctx, command("Get-RecipientPermission", map[string]interface{}{
		"Identity": identity,
	}))
}

func (s *exchangeClient) RemoveRecipientPermission(ctx context.Context, identity string, trustee string) error {
	return s.invoke(ctx, command("Remove-RecipientPermission", map[string]interface{}{
		"Identity":     identity,
		"Trustee":      trustee,
		"AccessRights": []string{"SendAs"},
		"Confirm":      false,
	}))
}

// SetMailboxSendOnBehalf replaces the mailbox's send-on-behalf set with the
// given trustees; callers compute the set difference.
func (s *exchangeClient) SetMailboxSendOnBehalf(ctx context.Context, identity string, trustees []string) error {
	if trustees == nil {
		trustees = []string{}
	}
	return s.invoke(ctx, command("Set-Mailbox", map[string]interface{}{
		"Identity":            identity,
		"GrantSendOnBehalfTo": trustees,
	}))
}

func (s *exchangeClient) SetMailboxType(ctx context.Context, identity string, mailboxType enums.MailboxType) error {
	return s.invoke(ctx, command("Set-Mailbox", map[string]interface{}{
		"Identity": identity,
		"Type":     string(mailboxType),
	}))
}

func (s *exchangeClient) CloseIdleConnections() {
	s.admin.CloseIdleConnections()
}
