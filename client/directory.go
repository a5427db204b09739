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
	"github.com/tenantops/offboarder/client/query"
	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/constants"
	"github.com/tenantops/offboarder/enums"
	"github.com/tenantops/offboarder/models/azure"
)

// DirectoryClient defines the methods to interface with the directory
// service: account lookup and update, license assignment, session
// revocation, and group link enumeration and removal.
type DirectoryClient interface {
	GetUser(ctx context.Context, identifier string) (azure.User, error)
	ListUsers(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.User]
	CreateUser(ctx context.Context, user azure.NewUser) (azure.User, error)
	SetAccountEnabled(ctx context.Context, id string, enabled bool) error
	RevokeSessions(ctx context.Context, id string) error
	AssignLicense(ctx context.Context, id string, add []azure.AssignedLicense, remove []string) error
	ListSubscribedSkus(ctx context.Context) <-chan AzureResult[azure.SubscribedSku]
	ListUserTransitiveGroups(ctx context.Context, id string) <-chan AzureResult[azure.DirectoryObject]
	ListUserOwnedObjects(ctx context.Context, id string) <-chan AzureResult[azure.DirectoryObject]
	ListUnifiedGroups(ctx context.Context) <-chan AzureResult[azure.Group]
	ListGroupLinks(ctx context.Context, groupId string, link enums.LinkType) <-chan AzureResult[azure.DirectoryObject]
	RemoveGroupLink(ctx context.Context, groupId string, objectId string, link enums.LinkType) error
	RemoveDirectoryRoleMember(ctx context.Context, roleId string, objectId string) error
	RemoveApplicationOwner(ctx context.Context, appId string, objectId string) error
	CloseIdleConnections()
}

// NewDirectoryClient creates a DirectoryClient against the given graph api
// url.
func NewDirectoryClient(apiUrl string, config config.Config) (DirectoryClient, error) {
	if restClient, err := rest.NewRestClient(apiUrl, config); err != nil {
		return nil, err
	} else {
		return &directoryClient{msgraph: restClient}, nil
	}
}

type directoryClient struct {
	msgraph rest.RestClient
}

// GetUser makes a direct lookup; the path segment accepts both the object
// id and the user principal name.
// https://learn.microsoft.com/en-us/graph/api/user-get?view=graph-rest-1.0
func (s *directoryClient) GetUser(ctx context.Context, identifier string) (azure.User, error) {
	var (
		user   azure.User
		path   = fmt.Sprintf("/%s/users/%s", constants.GraphApiVersion, identifier)
		params = query.GraphParams{Select: []string{"id", "accountEnabled", "displayName", "mail", "userPrincipalName", "assignedLicenses"}}
	)

	if res, err := s.msgraph.Get(ctx, path, params, nil); err != nil {
		return user, err
	} else if err := rest.Decode(res.Body, &user); err != nil {
		return user, err
	} else {
		return user, nil
	}
}

// ListUsers https://learn.microsoft.com/en-us/graph/api/user-list?view=graph-rest-1.0
func (s *directoryClient) ListUsers(ctx context.Context, params query.GraphParams) <-chan AzureResult[azure.User] {
	var (
		out  = make(chan AzureResult[azure.User])
		path = fmt.Sprintf("/%s/users", constants.GraphApiVersion)
	)

	if len(params.Select) == 0 {
		params.Select = []string{"id", "accountEnabled", "displayName", "mail", "userPrincipalName", "assignedLicenses"}
	}

	go getObjectList[azure.User](s.msgraph, ctx, path, params, out)

	return out
}

// CreateUser https://learn.microsoft.com/en-us/graph/api/user-post-users?view=graph-rest-1.0
func (s *directoryClient) CreateUser(ctx context.Context, user azure.NewUser) (azure.User, error) {
	var (
		created azure.User
		path    = fmt.Sprintf("/%s/users", constants.GraphApiVersion)
	)

	if res, err := s.msgraph.Post(ctx, path, user, nil, nil); err != nil {
		return created, err
	} else if err := rest.Decode(res.Body, &created); err != nil {
		return created, err
	} else {
		return created, nil
	}
}

// SetAccountEnabled https://learn.microsoft.com/en-us/graph/api/user-update?view=graph-rest-1.0
func (s *directoryClient) SetAccountEnabled(ctx context.Context, id string, enabled bool) error {
	var (
		path = fmt.Sprintf("/%s/users/%s", constants.GraphApiVersion, id)
		body = map[string]interface{}{"accountEnabled": enabled}
	)

	if res, err := s.msgraph.Patch(ctx, path, body, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// RevokeSessions invalidates all of the account's refresh tokens.
// https://learn.microsoft.com/en-us/graph/api/user-revokesigninsessions?view=graph-rest-1.0
func (s *directoryClient) RevokeSessions(ctx context.Context, id string) error {
	path := fmt.Sprintf("/%s/users/%s/revokeSignInSessions", constants.GraphApiVersion, id)

	if res, err := s.msgraph.Post(ctx, path, nil, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// AssignLicense adds and removes license skus in one call.
// https://learn.microsoft.com/en-us/graph/api/user-assignlicense?view=graph-rest-1.0
func (s *directoryClient) AssignLicense(ctx context.Context, id string, add []azure.AssignedLicense, remove []string) error {
	var (
		path = fmt.Sprintf("/%s/users/%s/assignLicense", constants.GraphApiVersion, id)
		body = map[string]interface{}{
			"addLicenses":    add,
			"removeLicenses": remove,
		}
	)

	if add == nil {
		body["addLicenses"] = []azure.AssignedLicense{}
	}
	if remove == nil {
		body["removeLicenses"] = []string{}
	}

	if res, err := s.msgraph.Post(ctx, path, body, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// ListSubscribedSkus https://learn.microsoft.com/en-us/graph/api/subscribedsku-list?view=graph-rest-1.0
func (s *directoryClient) ListSubscribedSkus(ctx context.Context) <-chan AzureResult[azure.SubscribedSku] {
	var (
		out  = make(chan AzureResult[azure.SubscribedSku])
		path = fmt.Sprintf("/%s/subscribedSkus", constants.GraphApiVersion)
	)

	go getObjectList[azure.SubscribedSku](s.msgraph, ctx, path, query.GraphParams{}, out)

	return out
}

// ListUserTransitiveGroups enumerates the identity scoped transitive
// membership list, groups and directory roles both.
// https://learn.microsoft.com/en-us/graph/api/user-list-transitivememberof?view=graph-rest-1.0
func (s *directoryClient) ListUserTransitiveGroups(ctx context.Context, id string) <-chan AzureResult[azure.DirectoryObject] {
	var (
		out  = make(chan AzureResult[azure.DirectoryObject])
		path = fmt.Sprintf("/%s/users/%s/transitiveMemberOf", constants.GraphApiVersion, id)
	)

	go getObjectList[azure.DirectoryObject](s.msgraph, ctx, path, query.GraphParams{}, out)

	return out
}

// ListUserOwnedObjects https://learn.microsoft.com/en-us/graph/api/user-list-ownedobjects?view=graph-rest-1.0
func (s *directoryClient) ListUserOwnedObjects(ctx context.Context, id string) <-chan AzureResult[azure.DirectoryObject] {
	var (
		out  = make(chan AzureResult[azure.DirectoryObject])
		path = fmt.Sprintf("/%s/users/%s/ownedObjects", constants.GraphApiVersion, id)
	)

	go getObjectList[azure.DirectoryObject](s.msgraph, ctx, path, query.GraphParams{}, out)

	return out
}

// ListUnifiedGroups enumerates the tenant's unified collaboration groups.
// https://learn.microsoft.com/en-us/graph/api/group-list?view=graph-rest-1.0
func (s *directoryClient) ListUnifiedGroups(ctx context.Context) <-chan AzureResult[azure.Group] {
	var (
		out    = make(chan AzureResult[azure.Group])
		path   = fmt.Sprintf("/%s/groups", constants.GraphApiVersion)
		params = query.GraphParams{
			Filter: "groupTypes/any(c:c eq 'Unified')",
			Select: []string{"id", "displayName", "mail", "mailEnabled", "securityEnabled", "groupTypes"},
		}
	)

	go getObjectList[azure.Group](s.msgraph, ctx, path, params, out)

	return out
}

// ListGroupLinks enumerates one of a group's two link collections.
// https://learn.microsoft.com/en-us/graph/api/group-list-members?view=graph-rest-1.0
func (s *directoryClient) ListGroupLinks(ctx context.Context, groupId string, link enums.LinkType) <-chan AzureResult[azure.DirectoryObject] {
	var (
		out  = make(chan AzureResult[azure.DirectoryObject])
		path = fmt.Sprintf("/%s/groups/%s/%s", constants.GraphApiVersion, groupId, link)
	)

	go getObjectList[azure.DirectoryObject](s.msgraph, ctx, path, query.GraphParams{}, out)

	return out
}

// RemoveGroupLink removes a member or owner link by reference.
// https://learn.microsoft.com/en-us/graph/api/group-delete-members?view=graph-rest-1.0
func (s *directoryClient) RemoveGroupLink(ctx context.Context, groupId string, objectId string, link enums.LinkType) error {
	path := fmt.Sprintf("/%s/groups/%s/%s/%s/$ref", constants.GraphApiVersion, groupId, link, objectId)

	if res, err := s.msgraph.Delete(ctx, path, nil, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// RemoveDirectoryRoleMember https://learn.microsoft.com/en-us/graph/api/directoryrole-delete-member?view=graph-rest-1.0
func (s *directoryClient) RemoveDirectoryRoleMember(ctx context.Context, roleId string, objectId string) error {
	path := fmt.Sprintf("/%s/directoryRoles/%s/members/%s/$ref", constants.GraphApiVersion, roleId, objectId)

	if res, err := s.msgraph.Delete(ctx, path, nil, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

// RemoveApplicationOwner https://learn.microsoft.com/en-us/graph/api/application-delete-owners?view=graph-rest-1.0
func (s *directoryClient) RemoveApplicationOwner(ctx context.Context, appId string, objectId string) error {
	path := fmt.Sprintf("/%s/applications/%s/owners/%s/$ref", constants.GraphApiVersion, appId, objectId)

	if res, err := s.msgraph.Delete(ctx, path, nil, nil, nil); err != nil {
		return err
	} else {
		res.Body.Close()
		return nil
	}
}

func (s *directoryClient) CloseIdleConnections() {
	s.msgraph.CloseIdleConnections()
}
