package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBeginRejectsEmptyInput(t *testing.T) {
	s := NewSession("s1")

	_, err := s.Begin("   \n\t")
	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, s.Messages())
	assert.False(t, s.Loading())
}

func TestSessionBeginRejectsWhileLoading(t *testing.T) {
	s := NewSession("s1")

	_, err := s.Begin("hello")
	require.NoError(t, err)

	_, err = s.Begin("again")
	require.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Messages(), 1)
	require.ErrorIs(t, s.SetInput("typing"), ErrBusy)
}

func TestSessionCommitClearsStreamedBuffer(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.SetInput("hi there"))

	_, err := s.Begin("hi there")
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Input)

	s.AppendStream("Hello ")
	s.AppendStream("world")
	assert.Equal(t, "Hello world", s.Streamed())

	s.Commit(Message{Role: RoleAI, Text: "Hello world"})

	state := s.Snapshot()
	assert.Empty(t, state.Streamed)
	assert.False(t, state.Loading)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, RoleUser, state.Messages[0].Role)
	assert.Equal(t, RoleAI, state.Messages[1].Role)
	assert.False(t, state.Messages[1].Timestamp.IsZero())
}

func TestSessionToggleThemeTwiceRestoresTheme(t *testing.T) {
	s := NewSession("s1")
	s.Seed(Message{Role: RoleAI, Text: "greeting"})
	before := s.Messages()

	assert.Equal(t, ThemeLight, s.ToggleTheme())
	assert.Equal(t, ThemeDark, s.ToggleTheme())
	assert.Equal(t, ThemeDark, s.Theme())
	assert.Equal(t, before, s.Messages())
}

func TestSessionSeedOnlyWhenEmpty(t *testing.T) {
	s := NewSession("s1")

	assert.True(t, s.Seed(Message{Role: RoleAI, Text: "one"}))
	assert.False(t, s.Seed(Message{Role: RoleAI, Text: "two"}))
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, "one", s.Messages()[0].Text)
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	s := NewSession("s1")
	s.Seed(Message{Role: RoleAI, Text: "greeting"})
	s.SetModal(true)

	state := s.Snapshot()
	state.Messages[0].Text = "changed"

	assert.True(t, state.ModalOpen)
	assert.Equal(t, "greeting", s.Messages()[0].Text)
}

func TestCompletionRole(t *testing.T) {
	assert.Equal(t, RoleAssistant, CompletionRole(RoleAI))
	assert.Equal(t, RoleUser, CompletionRole(RoleUser))
	assert.Equal(t, RoleSystem, CompletionRole(RoleSystem))
}
