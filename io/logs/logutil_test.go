package logs

import (
	"os"
	"path/filepath"
	"testing"

	joonix "github.com/joonix/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func restoreLogger(t *testing.T) {
	out, formatter, level := logrus.StandardLogger().Out, logrus.StandardLogger().Formatter, logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetFormatter(formatter)
		logrus.SetLevel(level)
	})
}

func TestSetFormat(t *testing.T) {
	restoreLogger(t)

	require.NoError(t, SetFormat("text", true))
	formatter, ok := logrus.StandardLogger().Formatter.(*prefixed.TextFormatter)
	require.True(t, ok)
	assert.True(t, formatter.DisableColors)
	assert.True(t, formatter.FullTimestamp)

	require.NoError(t, SetFormat("json", false))
	_, ok = logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	require.NoError(t, SetFormat("fluentd", false))
	_, ok = logrus.StandardLogger().Formatter.(*joonix.Formatter)
	assert.True(t, ok)

	assert.ErrorContains(t, SetFormat("yaml", false), "unknown log format yaml")
}

func TestSetVerbosity(t *testing.T) {
	restoreLogger(t)

	require.NoError(t, SetVerbosity("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.Error(t, SetVerbosity("loud"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestConfigurePersistentLogging(t *testing.T) {
	restoreLogger(t)

	// Parent directories are created.
	path := filepath.Join(t.TempDir(), "nested", "dir", "eraauth.log")
	require.NoError(t, ConfigurePersistentLogging(path))
	logrus.Info("Written to file")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Written to file")
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	// An existing directory is used as is.
	existing := t.TempDir()
	require.NoError(t, os.Chmod(existing, 0750))
	require.NoError(t, ConfigurePersistentLogging(filepath.Join(existing, "eraauth.log")))
}
