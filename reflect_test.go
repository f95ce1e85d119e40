package oparse

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectVarDuration(t *testing.T) {
	r := New("test")
	var timeout time.Duration
	flag, err := r.ReflectVar(&timeout, "timeout", "t", "give up after `duration`")
	require.NoError(t, err)
	assert.Equal(t, "time.Duration", flag.Value.Type())

	require.NoError(t, r.Parse([]string{"--timeout", "1h30m"}))
	assert.Equal(t, 90*time.Minute, timeout)
}

func TestReflectVarSlice(t *testing.T) {
	r := New("test")
	var hosts []string
	_, err := r.ReflectVar(&hosts, "hosts", "", "comma-separated `hosts`")
	require.NoError(t, err)

	require.NoError(t, r.Parse([]string{"--hosts", "a,b,c"}))
	assert.Equal(t, []string{"a", "b", "c"}, hosts)
}

func TestReflectVarBadPointer(t *testing.T) {
	r := New("test")
	_, err := r.ReflectVar(42, "answer", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFlagName), "not a pointer: %v", err)

	var p *int
	_, err = r.ReflectVar(p, "nilptr", "", "")
	require.Error(t, err, "nil pointer")
}

func TestReflectVarParseFailure(t *testing.T) {
	r := New("test")
	var timeout time.Duration
	_, err := r.ReflectVar(&timeout, "timeout", "", "")
	require.NoError(t, err)

	err = r.Parse([]string{"--timeout", "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--timeout", "parse errors name the flag")
}
