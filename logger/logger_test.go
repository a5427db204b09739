package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tenantops/offboarder/config"
)

func TestGetLogger(t *testing.T) {
	t.Run("returns a working logger", func(t *testing.T) {
		config.LoadValues(nil, config.Options())

		log, err := GetLogger()
		require.NoError(t, err)
		require.NotNil(t, log)
		require.True(t, log.Enabled())
	})

	t.Run("verbosity gates debug output", func(t *testing.T) {
		config.LoadValues(nil, config.Options())
		config.Verbosity.Set(0)
		t.Cleanup(func() { config.Verbosity.Set(config.Verbosity.Default) })

		log, err := GetLogger()
		require.NoError(t, err)
		require.False(t, log.V(1).Enabled())

		config.Verbosity.Set(2)
		require.True(t, log.V(1).Enabled())
		require.True(t, log.V(2).Enabled())
	})

	t.Run("also writes to the configured log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "offboarder.log")
		config.LoadValues(nil, config.Options())
		config.LogFile.Set(path)
		t.Cleanup(func() { config.LogFile.Set("") })

		log, err := GetLogger()
		require.NoError(t, err)

		log.Info("hello from the test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "hello from the test")
	})
}
