// Package panel holds the audit table presenter: its state transitions, the
// row model the table renders, and the clients it reads from.
package panel

import "github.com/lzjever/project-audit/internal/core"

// State is the view-local presenter state. An empty ProjectID means the
// project context is not resolved yet.
type State struct {
	Users     []core.AuditRecord
	Loading   bool
	ProjectID string

	// token of the most recently started fetch; older completions are stale.
	token uint64
}

func NewState() State {
	return State{Users: []core.AuditRecord{}, Loading: true}
}

func (s State) Resolved() bool { return s.ProjectID != "" }

// CanRefresh reports whether the refresh control is enabled.
func (s State) CanRefresh() bool { return !s.Loading && s.Resolved() }

// ContextResolved records the project id. An empty id leaves the state
// unresolved.
func (s State) ContextResolved(projectID string) State {
	if projectID != "" {
		s.ProjectID = projectID
	}
	return s
}

// FetchStarted marks the state loading and returns the token the matching
// FetchCompleted must carry.
func (s State) FetchStarted() (State, uint64) {
	s.token++
	s.Loading = true
	return s, s.token
}

// FetchCompleted applies records from the fetch identified by token. Results
// of a superseded fetch are dropped and leave the state untouched.
func (s State) FetchCompleted(token uint64, users []core.AuditRecord) State {
	if token != s.token {
		return s
	}
	if users == nil {
		users = []core.AuditRecord{}
	}
	s.Users = users
	s.Loading = false
	return s
}
