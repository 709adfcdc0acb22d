package alert

import (
	"bytes"
	"testing"

	"github.com/kevin07696/amwalpay-bridge/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_ShowError(t *testing.T) {
	var buf bytes.Buffer
	surface := NewWriter(&buf)

	surface.ShowError("Error", "Something Went Wrong")
	surface.ShowError("Error", "Unknown error")

	assert.Equal(t, "Error: Something Went Wrong\nError: Unknown error\n", buf.String())
}

func TestLog_ShowError(t *testing.T) {
	logger := mocks.NewMockLogger()
	surface := NewLog(logger)

	surface.ShowError("Error", "Invalid secure hash")

	require.Len(t, logger.WarnCalls, 1)
	msg, ok := logger.WarnCalls[0].Field("message")
	require.True(t, ok)
	assert.Equal(t, "Invalid secure hash", msg)
}
