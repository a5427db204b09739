package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestLoadValues(t *testing.T) {
	t.Run("defaults apply when nothing is set", func(t *testing.T) {
		LoadValues(nil, Options())

		require.Equal(t, "https://graph.microsoft.com", GraphUrl.Value())
		require.Equal(t, false, DryRun.Value())
		require.Equal(t, "US", UsageLocation.Value())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("OFFBOARDER_TENANT", "corp.onmicrosoft.com")
		t.Setenv("OFFBOARDER_NOTIFY_WEBHOOK", "https://hooks.corp.com/x")

		LoadValues(nil, Options())

		require.Equal(t, "corp.onmicrosoft.com", Tenant.Value())
		require.Equal(t, "https://hooks.corp.com/x", NotifyWebhook.Value())
	})

	t.Run("list values from the environment arrive untyped", func(t *testing.T) {
		t.Setenv("OFFBOARDER_LICENSE_SKU", "ENTERPRISEPACK")

		LoadValues(nil, Options())

		_, isStringSlice := LicenseSkus.Value().([]string)
		require.False(t, isStringSlice)
		require.Equal(t, []string{"ENTERPRISEPACK"}, cast.ToStringSlice(LicenseSkus.Value()))
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("OFFBOARDER_TENANT", "env.onmicrosoft.com")

		cmd := &cobra.Command{Use: "test"}
		Init(cmd, Options())
		require.NoError(t, cmd.PersistentFlags().Set(Tenant.Name, "flag.onmicrosoft.com"))

		LoadValues(cmd, Options())

		require.Equal(t, "flag.onmicrosoft.com", Tenant.Value())
	})

	t.Run("config file values load when the file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"app": "file-app-id"}`), 0600))

		ConfigFile.Set(path)
		t.Cleanup(func() { ConfigFile.Set(ConfigFile.Default) })

		LoadValues(nil, Options())

		require.Equal(t, "file-app-id", AppId.Value())
	})
}

func TestInit(t *testing.T) {
	t.Run("registers flags with shorthands", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		Init(cmd, Options())

		tenant := cmd.PersistentFlags().Lookup("tenant")
		require.NotNil(t, tenant)
		require.Equal(t, "t", tenant.Shorthand)

		dryRun := cmd.Flags().Lookup("dry-run")
		require.NotNil(t, dryRun)
		require.Equal(t, "n", dryRun.Shorthand)
	})
}
