package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelGating(t *testing.T) {
	sl := registerNewSubLogger("TESTING")
	var buf bytes.Buffer
	sl.SetOutput(&buf)
	sl.SetLevel("INFO|ERROR")

	Debugf(sl, "should not appear %v", 1)
	Infof(sl, "hello %v", "world")
	Warn(sl, "should not appear either")
	Error(sl, "boom")

	out := buf.String()
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "should not appear")
	require.Equal(t, 2, strings.Count(out, "\n"))
}

func TestSplitLevel(t *testing.T) {
	l := splitLevel("INFO|DEBUG|WARN|ERROR")
	assert.True(t, l.Info)
	assert.True(t, l.Debug)
	assert.True(t, l.Warn)
	assert.True(t, l.Error)

	l = splitLevel("")
	assert.False(t, l.Info)
}

func TestNilSubLogger(t *testing.T) {
	var sl *SubLogger
	assert.NotPanics(t, func() {
		Info(sl, "nil receiver should be ignored")
	})
}
