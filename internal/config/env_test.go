package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerEnv_DefaultValues(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	env, err := NewServerEnv()
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, int64(1<<20), env.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, env.RequestTimeout)
	assert.Equal(t, 10*time.Second, env.ShutdownTimeout)
}

func TestNewServerEnv_CustomValues(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "2")

	env, err := NewServerEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(4096), env.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, env.RequestTimeout)
	assert.Equal(t, 2*time.Second, env.ShutdownTimeout)
}

func TestNewServerEnv_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{"non-numeric body limit", "MAX_BODY_BYTES", "lots", "invalid MAX_BODY_BYTES"},
		{"body limit too small", "MAX_BODY_BYTES", "10", "at least 1024"},
		{"zero request timeout", "REQUEST_TIMEOUT_SECONDS", "0", "REQUEST_TIMEOUT_SECONDS must be"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT_SECONDS", "-1", "SHUTDOWN_TIMEOUT_SECONDS must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAX_BODY_BYTES", "")
			t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
			t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")
			t.Setenv(tt.key, tt.value)

			env, err := NewServerEnv()
			require.Error(t, err)
			assert.Nil(t, env)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
