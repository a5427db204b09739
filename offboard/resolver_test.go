package offboard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/models/exchange"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("direct lookup", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.user = testUser()

		mail := newFakeExchange()
		mail.recipients["a@corp.com"] = exchange.Recipient{
			Identity:           "a@corp.com",
			PrimarySmtpAddress: "a@corp.com",
		}

		resolver := NewResolver(directory, mail, logr.Discard())
		identity, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.NoError(t, err)
		require.Equal(t, "user-1", identity.Id)
		require.Equal(t, []string{"sku-1"}, identity.AssignedLicenses)
		require.NotNil(t, identity.Recipient)
	})

	t.Run("falls back to filtered search", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.getUserErr = rest.StatusError{StatusCode: http.StatusNotFound}
		directory.searched = []azure.User{testUser()}

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		identity, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.NoError(t, err)
		require.Equal(t, "user-1", identity.Id)
	})

	t.Run("no match anywhere is ErrNotFound", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.getUserErr = rest.StatusError{StatusCode: http.StatusNotFound}

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		_, err := resolver.Resolve(context.Background(), "nobody@corp.com")

		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ambiguous search resolves to the first match", func(t *testing.T) {
		second := testUser()
		second.Id = "user-2"

		directory := newFakeDirectory()
		directory.getUserErr = rest.StatusError{StatusCode: http.StatusNotFound}
		directory.searched = []azure.User{testUser(), second}

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		identity, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.NoError(t, err)
		require.Equal(t, "user-1", identity.Id)
	})

	t.Run("transient lookup failure is not ErrNotFound", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.getUserErr = errors.New("connection reset by peer")
		directory.searched = []azure.User{testUser()}

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		_, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("remote 5xx on direct lookup skips the filtered search", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.getUserErr = rest.StatusError{StatusCode: http.StatusInternalServerError}

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		_, err := resolver.Resolve(context.Background(), "00000000-0000-0000-0000-000000000000")

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("search failure is not ErrNotFound", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.getUserErr = rest.StatusError{StatusCode: http.StatusNotFound}
		directory.searchErr = errors.New("throttled")

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		_, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("recipient resolution failure is non-fatal", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.user = testUser()

		resolver := NewResolver(directory, newFakeExchange(), logr.Discard())
		identity, err := resolver.Resolve(context.Background(), "a@corp.com")

		require.NoError(t, err)
		require.Nil(t, identity.Recipient)
	})

	t.Run("recipient lookup falls back to the mail address", func(t *testing.T) {
		user := testUser()
		user.UserPrincipalName = "alice@corp.onmicrosoft.com"
		user.Mail = "a@corp.com"

		directory := newFakeDirectory()
		directory.user = user

		mail := newFakeExchange()
		mail.recipients["a@corp.com"] = exchange.Recipient{
			Identity:           "a@corp.com",
			PrimarySmtpAddress: "a@corp.com",
		}

		resolver := NewResolver(directory, mail, logr.Discard())
		identity, err := resolver.Resolve(context.Background(), "alice@corp.onmicrosoft.com")

		require.NoError(t, err)
		require.NotNil(t, identity.Recipient)
		require.Equal(t, "a@corp.com", identity.Recipient.PrimarySmtpAddress)
	})
}
