package schema

import "time"

// SessionRecord is one explicit artifact selection.
type SessionRecord struct {
	ID         string     `json:"id" yaml:"id"`
	Descriptor string     `json:"descriptor" yaml:"descriptor"`
	Transport  string     `json:"transport" yaml:"transport"`
	OpenedAt   time.Time  `json:"opened_at" yaml:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// Active reports whether the session has not been closed.
func (r SessionRecord) Active() bool {
	return r.ClosedAt == nil
}

// SessionStatus represents the status of the session store.
type SessionStatus struct {
	Backend       string         `json:"backend" yaml:"backend"`
	Database      string         `json:"database,omitempty" yaml:"database,omitempty"`
	Connected     bool           `json:"connected" yaml:"connected"`
	TotalSessions int            `json:"total_sessions" yaml:"total_sessions"`
	Current       *SessionRecord `json:"current,omitempty" yaml:"current,omitempty"`
	LastOpened    time.Time      `json:"last_opened" yaml:"last_opened"`
}
