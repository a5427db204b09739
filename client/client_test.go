package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tenantops/offboarder/client/query"
	"github.com/tenantops/offboarder/client/rest/mocks"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

func jsonResponse(t *testing.T, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

func collect[T any](t *testing.T, stream <-chan AzureResult[T]) []T {
	t.Helper()
	var items []T
	for result := range stream {
		require.NoError(t, result.Error)
		items = append(items, result.Ok)
	}
	return items
}

func TestDirectoryClient_ListUsers(t *testing.T) {
	t.Run("follows continuation links across pages", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mocks.NewMockRestClient(ctrl)
		directory := &directoryClient{msgraph: mockClient}

		firstPage := azure.Page[azure.User]{
			NextLink: "https://graph.test/v1.0/users?$skiptoken=abc",
			Value:    []azure.User{{UserPrincipalName: "a@corp.com"}},
		}
		secondPage := azure.Page[azure.User]{
			Value: []azure.User{{UserPrincipalName: "b@corp.com"}},
		}

		mockClient.EXPECT().
			Get(gomock.Any(), "/v1.0/users", gomock.Any(), gomock.Nil()).
			Return(jsonResponse(t, firstPage), nil)
		mockClient.EXPECT().
			Send(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				require.Equal(t, "https://graph.test/v1.0/users?$skiptoken=abc", req.URL.String())
				return jsonResponse(t, secondPage), nil
			})

		users := collect(t, directory.ListUsers(context.Background(), query.GraphParams{}))

		require.Len(t, users, 2)
		require.Equal(t, "a@corp.com", users[0].UserPrincipalName)
		require.Equal(t, "b@corp.com", users[1].UserPrincipalName)
	})

	t.Run("request failure ends the stream with one error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mocks.NewMockRestClient(ctrl)
		directory := &directoryClient{msgraph: mockClient}

		mockClient.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, io.ErrUnexpectedEOF)

		var results []AzureResult[azure.User]
		for result := range directory.ListUsers(context.Background(), query.GraphParams{}) {
			results = append(results, result)
		}

		require.Len(t, results, 1)
		require.ErrorIs(t, results[0].Error, io.ErrUnexpectedEOF)
	})
}

func TestExchangeClient_Cmdlets(t *testing.T) {
	newTestClient := func(t *testing.T) (*exchangeClient, *mocks.MockRestClient) {
		ctrl := gomock.NewController(t)
		mockClient := mocks.NewMockRestClient(ctrl)
		return &exchangeClient{admin: mockClient, basePath: "/adminapi/beta/test-tenant"}, mockClient
	}

	t.Run("shared mailbox listing invokes Get-Mailbox", func(t *testing.T) {
		admin, mockClient := newTestClient(t)

		page := azure.Page[exchange.Recipient]{
			Value: []exchange.Recipient{{Identity: "support", PrimarySmtpAddress: "support@corp.com"}},
		}

		mockClient.EXPECT().
			Post(gomock.Any(), "/adminapi/beta/test-tenant/InvokeCommand", gomock.Any(), gomock.Nil(), gomock.Nil()).
			DoAndReturn(func(ctx context.Context, path string, body any, params query.Params, headers map[string]string) (*http.Response, error) {
				cmdlet, ok := body.(cmdletBody)
				require.True(t, ok)
				require.Equal(t, "Get-Mailbox", cmdlet.CmdletInput.CmdletName)
				require.Equal(t, "SharedMailbox", cmdlet.CmdletInput.Parameters["RecipientTypeDetails"])
				return jsonResponse(t, page), nil
			})

		mailboxes := collect(t, admin.ListSharedMailboxes(context.Background()))

		require.Len(t, mailboxes, 1)
		require.Equal(t, "support@corp.com", mailboxes[0].PrimarySmtpAddress)
	})

	t.Run("permission removal invokes Remove-MailboxPermission without confirmation", func(t *testing.T) {
		admin, mockClient := newTestClient(t)

		mockClient.EXPECT().
			Post(gomock.Any(), "/adminapi/beta/test-tenant/InvokeCommand", gomock.Any(), gomock.Nil(), gomock.Nil()).
			DoAndReturn(func(ctx context.Context, path string, body any, params query.Params, headers map[string]string) (*http.Response, error) {
				cmdlet := body.(cmdletBody)
				require.Equal(t, "Remove-MailboxPermission", cmdlet.CmdletInput.CmdletName)
				require.Equal(t, "support", cmdlet.CmdletInput.Parameters["Identity"])
				require.Equal(t, "a@corp.com", cmdlet.CmdletInput.Parameters["User"])
				require.Equal(t, false, cmdlet.CmdletInput.Parameters["Confirm"])
				return jsonResponse(t, map[string]any{}), nil
			})

		err := admin.RemoveMailboxPermission(context.Background(), "support", "a@corp.com", []string{"FullAccess"})
		require.NoError(t, err)
	})

	t.Run("send-on-behalf replacement never sends a null set", func(t *testing.T) {
		admin, mockClient := newTestClient(t)

		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Nil()).
			DoAndReturn(func(ctx context.Context, path string, body any, params query.Params, headers map[string]string) (*http.Response, error) {
				cmdlet := body.(cmdletBody)
				require.Equal(t, "Set-Mailbox", cmdlet.CmdletInput.CmdletName)
				require.Equal(t, []string{}, cmdlet.CmdletInput.Parameters["GrantSendOnBehalfTo"])
				return jsonResponse(t, map[string]any{}), nil
			})

		err := admin.SetMailboxSendOnBehalf(context.Background(), "support", nil)
		require.NoError(t, err)
	})

	t.Run("recipient lookup surfaces an empty result as an error", func(t *testing.T) {
		admin, mockClient := newTestClient(t)

		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Nil()).
			Return(jsonResponse(t, azure.Page[exchange.Recipient]{}), nil)

		_, err := admin.GetRecipient(context.Background(), "nobody@corp.com")
		require.Error(t, err)
	})
}
