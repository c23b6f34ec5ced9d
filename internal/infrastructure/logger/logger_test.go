package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Service: "asset-approval", Env: "test", Output: &buf})

	l.WithField("trace_id", "t-1").Debug("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "debug", line["level"])
	require.Equal(t, "asset-approval", line["service"])
	require.Equal(t, "test", line["env"])
	require.Equal(t, "t-1", line["trace_id"])
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l := New(Options{Level: "loud", Format: "text", Output: &bytes.Buffer{}})
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
}

func TestInstall_ConfiguresStandardLogger(t *testing.T) {
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	prevOut, prevFmt, prevLevel := std.Out, std.Formatter, std.GetLevel()
	prevHooks := std.ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFmt)
		std.SetLevel(prevLevel)
		std.ReplaceHooks(prevHooks)
	})

	Install(New(Options{Service: "svc", Output: &buf}))
	logrus.Info("via package logger")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "svc", line["service"])
}
