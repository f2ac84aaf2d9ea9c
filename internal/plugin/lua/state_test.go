package lua

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"
)

func TestNewState(t *testing.T) {
	s := NewState()
	defer s.Close()

	assert.False(t, s.IsClosed())
	assert.Equal(t, DefaultExecutionTimeout, s.Timeout())
}

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoString(`x = 1 + 1`))
	assert.Equal(t, glua.LNumber(2), s.GetGlobal("x"))

	assert.Error(t, s.DoString(`invalid lua code !!!`))
}

func TestStateSafeLibraries(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"string", "table", "math", "pairs", "tostring"} {
		assert.NotEqual(t, glua.LNil, s.GetGlobal(name), name)
	}
	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "loadstring", "require"} {
		assert.Equal(t, glua.LNil, s.GetGlobal(name), name)
	}
}

func TestStateCallFunction(t *testing.T) {
	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoString(`
		function pair(a, b) return b, a end
		function none() end
		function boom() error("boom") end
	`))

	ret, err := s.CallFunction(s.GetGlobal("pair"), glua.LNumber(1), glua.LString("two"))
	require.NoError(t, err)
	assert.Equal(t, []glua.LValue{glua.LString("two"), glua.LNumber(1)}, ret)

	ret, err = s.CallFunction(s.GetGlobal("none"))
	require.NoError(t, err)
	assert.NotNil(t, ret)
	assert.Empty(t, ret)

	_, err = s.CallFunction(s.GetGlobal("boom"))
	assert.ErrorContains(t, err, "boom")

	_, err = s.CallFunction(glua.LNumber(3))
	assert.Error(t, err)

	// A failed call leaves the stack balanced.
	assert.Equal(t, 0, s.L.GetTop())
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(20 * time.Millisecond))
	defer s.Close()

	require.NoError(t, s.DoString(`function spin() while true do end end`))

	_, err := s.CallFunction(s.GetGlobal("spin"))
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	// The state remains usable after a timeout.
	require.NoError(t, s.DoString(`y = 3`))
	assert.Equal(t, glua.LNumber(3), s.GetGlobal("y"))
}

func TestStateClose(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, glua.LNil, s.GetGlobal("x"))
}
