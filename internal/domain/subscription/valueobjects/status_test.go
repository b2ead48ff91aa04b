package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	status, err = ParseStatus(" TRIAL ")
	require.NoError(t, err)
	assert.Equal(t, StatusTrial, status)

	_, err = ParseStatus("paused")
	assert.Error(t, err)
}

func TestParseStatus_LegacyInactiveAlias(t *testing.T) {
	status, err := ParseStatus("inactive")

	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, status)
}

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, StatusTrial.CanTransitionTo(StatusActive))
	assert.True(t, StatusTrial.CanTransitionTo(StatusCanceled))
	assert.True(t, StatusActive.CanTransitionTo(StatusActive))
	assert.True(t, StatusActive.CanTransitionTo(StatusCanceled))

	assert.False(t, StatusActive.CanTransitionTo(StatusTrial))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusActive))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusTrial))
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCanceled.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, StatusTrial.IsTerminal())
}
