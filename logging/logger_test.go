package logging

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init("production", "debug", dir))
	_, ok := Logger.Formatter.(*logrus.JSONFormatter)
	require.True(t, ok)
	require.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	Logger.Info("hello")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestInitStdoutOnly(t *testing.T) {
	require.NoError(t, Init("", "info", ""))
	_, ok := Logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	Discard()
}
