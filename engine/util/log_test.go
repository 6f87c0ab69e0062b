package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFilter(t *testing.T) {
	var buf bytes.Buffer
	previous := SetLogOutput(&buf)
	defer SetLogOutput(previous)
	SetLogFilter(LogLevelInfo, LogWorld)
	defer SetLogFilter(LogLevelInfo, LogWorld|LogConfig)

	LogWorldError("[World] kept")
	LogWorldDebug("[World] too verbose")
	LogPathInfo("[Path] other category")

	assert.Equal(t, "[World] kept\n", buf.String())
}
