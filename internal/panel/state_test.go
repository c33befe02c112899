package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lzjever/project-audit/internal/core"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Empty(t, s.Users)
	assert.True(t, s.Loading)
	assert.False(t, s.Resolved())
	assert.False(t, s.CanRefresh())
}

func TestContextResolved(t *testing.T) {
	s := NewState().ContextResolved("")
	assert.False(t, s.Resolved(), "empty id keeps the state unresolved")

	s = s.ContextResolved("PROJ")
	assert.True(t, s.Resolved())
	assert.Equal(t, "PROJ", s.ProjectID)
	assert.False(t, s.CanRefresh(), "still loading")
}

func TestFetchCycle(t *testing.T) {
	s := NewState().ContextResolved("PROJ")

	s, tok := s.FetchStarted()
	assert.True(t, s.Loading)

	users := []core.AuditRecord{{UserID: "u1"}}
	s = s.FetchCompleted(tok, users)
	assert.False(t, s.Loading)
	assert.Equal(t, users, s.Users)
	assert.True(t, s.CanRefresh())
}

func TestFetchCompleted_NilUsers(t *testing.T) {
	s, tok := NewState().ContextResolved("PROJ").FetchStarted()
	s = s.FetchCompleted(tok, nil)
	assert.NotNil(t, s.Users)
	assert.Empty(t, s.Users)
	assert.False(t, s.Loading)
}

func TestFetchCompleted_StaleResponseDropped(t *testing.T) {
	s := NewState().ContextResolved("PROJ")
	s, first := s.FetchStarted()
	s, second := s.FetchStarted()

	fresh := []core.AuditRecord{{UserID: "new"}}
	s = s.FetchCompleted(second, fresh)

	stale := []core.AuditRecord{{UserID: "old"}}
	s = s.FetchCompleted(first, stale)

	assert.Equal(t, fresh, s.Users)
	assert.False(t, s.Loading)
}

func TestFetchCompleted_StaleWhileNewerPending(t *testing.T) {
	s := NewState().ContextResolved("PROJ")
	s, first := s.FetchStarted()
	s, _ = s.FetchStarted()

	s = s.FetchCompleted(first, []core.AuditRecord{{UserID: "old"}})
	assert.True(t, s.Loading, "newer fetch still pending")
	assert.Empty(t, s.Users)
}
