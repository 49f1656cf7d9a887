package kiosk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	hash, err := HashKey("device-key-1")
	require.NoError(t, err)

	v := NewVerifier([]string{hash})

	assert.NoError(t, v.Verify("device-key-1"))
	assert.ErrorIs(t, v.Verify("wrong-key"), ErrInvalidDeviceKey)
	assert.ErrorIs(t, v.Verify(""), ErrInvalidDeviceKey)
}

func TestVerify_MultipleDevices(t *testing.T) {
	hash1, err := HashKey("device-key-1")
	require.NoError(t, err)
	hash2, err := HashKey("device-key-2")
	require.NoError(t, err)

	v := NewVerifier([]string{hash1, hash2})

	assert.NoError(t, v.Verify("device-key-1"))
	assert.NoError(t, v.Verify("device-key-2"))
	assert.ErrorIs(t, v.Verify("device-key-3"), ErrInvalidDeviceKey)
}

func TestVerify_NoDevices(t *testing.T) {
	v := NewVerifier(nil)

	assert.ErrorIs(t, v.Verify("anything"), ErrInvalidDeviceKey)
}
