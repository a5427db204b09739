package offboard

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"github.com/tenantops/offboarder/models/azure"
)

func TestOnboarder_Onboard(t *testing.T) {
	t.Run("creates the account and assigns licenses", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.subscribedSkus = []azure.SubscribedSku{
			{SkuId: "sku-guid-1", SkuPartNumber: "ENTERPRISEPACK"},
		}

		onboarder := NewOnboarder(directory, logr.Discard())
		result, err := onboarder.Onboard(context.Background(), "b@corp.com", "Bob Brown", "US", []string{"enterprisepack"})

		require.NoError(t, err)
		require.Equal(t, "new-id", result.Id)
		require.NotEmpty(t, result.Password)
		require.Equal(t, []string{"enterprisepack"}, result.AssignedSkus)

		require.Len(t, directory.createdUsers, 1)
		created := directory.createdUsers[0]
		require.Equal(t, "b@corp.com", created.UserPrincipalName)
		require.Equal(t, "b", created.MailNickname)
		require.True(t, created.PasswordProfile.ForceChangePasswordNextSignIn)
		require.Equal(t, result.Password, created.PasswordProfile.Password)

		require.Equal(t, []azure.AssignedLicense{{SkuId: "sku-guid-1"}}, directory.assignedLicenses["new-id"])
	})

	t.Run("unknown sku fails before any account is created", func(t *testing.T) {
		directory := newFakeDirectory()

		onboarder := NewOnboarder(directory, logr.Discard())
		_, err := onboarder.Onboard(context.Background(), "b@corp.com", "Bob Brown", "US", []string{"NOSUCHSKU"})

		require.Error(t, err)
		require.Empty(t, directory.createdUsers)
	})

	t.Run("dry run creates nothing", func(t *testing.T) {
		directory := newFakeDirectory()

		onboarder := NewOnboarder(directory, logr.Discard())
		onboarder.DryRun = true
		result, err := onboarder.Onboard(context.Background(), "b@corp.com", "Bob Brown", "US", nil)

		require.NoError(t, err)
		require.Empty(t, result.Password)
		require.Empty(t, directory.createdUsers)
	})

	t.Run("generated passwords are unique", func(t *testing.T) {
		first, err := generatePassword()
		require.NoError(t, err)
		second, err := generatePassword()
		require.NoError(t, err)
		require.NotEqual(t, first, second)
		require.GreaterOrEqual(t, len(first), 20)
	})
}
