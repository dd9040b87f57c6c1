package logging

import (
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, logging.LogLevelDebug, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	before := len(loggers)
	NewLogger("test")
	require.Len(t, loggers, before+1)

	SetLevel(logging.LogLevelTrace)
	defer SetLevel(logging.LogLevelError)
	assert.Equal(t, logging.LogLevelTrace, loggerFactory.DefaultLogLevel)
}
