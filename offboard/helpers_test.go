package offboard

import (
	"context"
	"fmt"

	"github.com/tenantops/offboarder/client"
	"github.com/tenantops/offboarder/client/query"
	"github.com/tenantops/offboarder/enums"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

func stream[T any](items []T, err error) <-chan client.AzureResult[T] {
	out := make(chan client.AzureResult[T], len(items)+1)
	for _, item := range items {
		out <- client.AzureResult[T]{Ok: item}
	}
	if err != nil {
		out <- client.AzureResult[T]{Error: err}
	}
	close(out)
	return out
}

type fakeDirectory struct {
	user       azure.User
	getUserErr error
	searched   []azure.User
	searchErr  error

	transitive     []azure.DirectoryObject
	transitiveErr  error
	owned          []azure.DirectoryObject
	unifiedGroups  []azure.Group
	groupLinks     map[string]map[enums.LinkType][]azure.DirectoryObject
	subscribedSkus []azure.SubscribedSku

	removeLinkErr map[string]error

	disabled         []string
	revoked          []string
	licenseRemovals  map[string][]string
	createdUsers     []azure.NewUser
	assignedLicenses map[string][]azure.AssignedLicense
	removedLinks     []string
	removedRoles     []string
	removedAppOwners []string

	linkListCtxs []context.Context
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		groupLinks:       map[string]map[enums.LinkType][]azure.DirectoryObject{},
		removeLinkErr:    map[string]error{},
		licenseRemovals:  map[string][]string{},
		assignedLicenses: map[string][]azure.AssignedLicense{},
	}
}

func (s *fakeDirectory) GetUser(ctx context.Context, identifier string) (azure.User, error) {
	if s.getUserErr != nil {
		return azure.User{}, s.getUserErr
	}
	return s.user, nil
}

func (s *fakeDirectory) ListUsers(ctx context.Context, params query.GraphParams) <-chan client.AzureResult[azure.User] {
	return stream(s.searched, s.searchErr)
}

func (s *fakeDirectory) CreateUser(ctx context.Context, user azure.NewUser) (azure.User, error) {
	s.createdUsers = append(s.createdUsers, user)
	created := azure.User{
		Entity:            azure.Entity{Id: "new-id"},
		AccountEnabled:    user.AccountEnabled,
		DisplayName:       user.DisplayName,
		UserPrincipalName: user.UserPrincipalName,
	}
	return created, nil
}

func (s *fakeDirectory) SetAccountEnabled(ctx context.Context, id string, enabled bool) error {
	if !enabled {
		s.disabled = append(s.disabled, id)
	}
	return nil
}

func (s *fakeDirectory) RevokeSessions(ctx context.Context, id string) error {
	s.revoked = append(s.revoked, id)
	return nil
}

func (s *fakeDirectory) AssignLicense(ctx context.Context, id string, add []azure.AssignedLicense, remove []string) error {
	if len(remove) > 0 {
		s.licenseRemovals[id] = append(s.licenseRemovals[id], remove...)
	}
	if len(add) > 0 {
		s.assignedLicenses[id] = append(s.assignedLicenses[id], add...)
	}
	return nil
}

func (s *fakeDirectory) ListSubscribedSkus(ctx context.Context) <-chan client.AzureResult[azure.SubscribedSku] {
	return stream(s.subscribedSkus, nil)
}

func (s *fakeDirectory) ListUserTransitiveGroups(ctx context.Context, id string) <-chan client.AzureResult[azure.DirectoryObject] {
	return stream(s.transitive, s.transitiveErr)
}

func (s *fakeDirectory) ListUserOwnedObjects(ctx context.Context, id string) <-chan client.AzureResult[azure.DirectoryObject] {
	return stream(s.owned, nil)
}

func (s *fakeDirectory) ListUnifiedGroups(ctx context.Context) <-chan client.AzureResult[azure.Group] {
	return stream(s.unifiedGroups, nil)
}

func (s *fakeDirectory) ListGroupLinks(ctx context.Context, groupId string, link enums.LinkType) <-chan client.AzureResult[azure.DirectoryObject] {
	s.linkListCtxs = append(s.linkListCtxs, ctx)
	return stream(s.groupLinks[groupId][link], nil)
}

func (s *fakeDirectory) RemoveGroupLink(ctx context.Context, groupId string, objectId string, link enums.LinkType) error {
	key := fmt.Sprintf("%s/%s/%s", groupId, link, objectId)
	if err := s.removeLinkErr[key]; err != nil {
		return err
	}
	s.removedLinks = append(s.removedLinks, key)
	return nil
}

func (s *fakeDirectory) RemoveDirectoryRoleMember(ctx context.Context, roleId string, objectId string) error {
	s.removedRoles = append(s.removedRoles, fmt.Sprintf("%s/%s", roleId, objectId))
	return nil
}

func (s *fakeDirectory) RemoveApplicationOwner(ctx context.Context, appId string, objectId string) error {
	s.removedAppOwners = append(s.removedAppOwners, fmt.Sprintf("%s/%s", appId, objectId))
	return nil
}

func (s *fakeDirectory) CloseIdleConnections() {}

type fakeExchange struct {
	recipients map[string]exchange.Recipient

	distributionGroups []exchange.Recipient
	members            map[string][]exchange.Recipient
	memberErr          map[string]error
	removeMemberErr    map[string]error

	sharedMailboxes      []exchange.Recipient
	mailboxPermissions   map[string][]exchange.MailboxPermission
	mailboxPermErr       map[string]error
	recipientPermissions map[string][]exchange.RecipientPermission
	recipientPermErr     map[string]error

	removedMembers        []string
	removedMailboxPerms   []string
	removedRecipientPerms []string
	sendOnBehalfSets      map[string][]string
	mailboxTypes          map[string]enums.MailboxType

	memberListCtxs []context.Context
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		recipients:           map[string]exchange.Recipient{},
		members:              map[string][]exchange.Recipient{},
		memberErr:            map[string]error{},
		removeMemberErr:      map[string]error{},
		mailboxPermissions:   map[string][]exchange.MailboxPermission{},
		mailboxPermErr:       map[string]error{},
		recipientPermissions: map[string][]exchange.RecipientPermission{},
		recipientPermErr:     map[string]error{},
		sendOnBehalfSets:     map[string][]string{},
		mailboxTypes:         map[string]enums.MailboxType{},
	}
}

func (s *fakeExchange) GetRecipient(ctx context.Context, identifier string) (exchange.Recipient, error) {
	if recipient, found := s.recipients[identifier]; found {
		return recipient, nil
	}
	return exchange.Recipient{}, fmt.Errorf("recipient %q not found", identifier)
}

func (s *fakeExchange) ListDistributionGroups(ctx context.Context) <-chan client.AzureResult[exchange.Recipient] {
	return stream(s.distributionGroups, nil)
}

func (s *fakeExchange) ListDistributionGroupMembers(ctx context.Context, identity string) <-chan client.AzureResult[exchange.Recipient] {
	s.memberListCtxs = append(s.memberListCtxs, ctx)
	return stream(s.members[identity], s.memberErr[identity])
}

func (s *fakeExchange) RemoveDistributionGroupMember(ctx context.Context, groupIdentity string, memberIdentity string) error {
	if err := s.removeMemberErr[groupIdentity]; err != nil {
		return err
	}
	s.removedMembers = append(s.removedMembers, fmt.Sprintf("%s/%s", groupIdentity, memberIdentity))
	return nil
}

func (s *fakeExchange) ListSharedMailboxes(ctx context.Context) <-chan client.AzureResult[exchange.Recipient] {
	return stream(s.sharedMailboxes, nil)
}

func (s *fakeExchange) ListMailboxPermissions(ctx context.Context, identity string) ([]exchange.MailboxPermission, error) {
	if err := s.mailboxPermErr[identity]; err != nil {
		return nil, err
	}
	return s.mailboxPermissions[identity], nil
}

func (s *fakeExchange) RemoveMailboxPermission(ctx context.Context, identity string, trustee string, accessRights []string) error {
	s.removedMailboxPerms = append(s.removedMailboxPerms, fmt.Sprintf("%s/%s", identity, trustee))
	return nil
}

func (s *fakeExchange) ListRecipientPermissions(ctx context.Context, identity string) ([]exchange.RecipientPermission, error) {
	if err := s.recipientPermErr[identity]; err != nil {
		return nil, err
	}
	return s.recipientPermissions[identity], nil
}

func (s *fakeExchange) RemoveRecipientPermission(ctx context.Context, identity string, trustee string) error {
	s.removedRecipientPerms = append(s.removedRecipientPerms, fmt.Sprintf("%s/%s", identity, trustee))
	return nil
}

func (s *fakeExchange) SetMailboxSendOnBehalf(ctx context.Context, identity string, trustees []string) error {
	s.sendOnBehalfSets[identity] = trustees
	return nil
}

func (s *fakeExchange) SetMailboxType(ctx context.Context, identity string, mailboxType enums.MailboxType) error {
	s.mailboxTypes[identity] = mailboxType
	return nil
}

func (s *fakeExchange) CloseIdleConnections() {}

type fakeNotifier struct {
	posts []string
	err   error
}

func (s *fakeNotifier) Post(ctx context.Context, destination string, body string) error {
	if s.err != nil {
		return s.err
	}
	s.posts = append(s.posts, body)
	return nil
}
