package cache

import "time"

// OutletState is one observed or commanded outlet state.
type OutletState struct {
	Host      string    `db:"host" json:"host"`
	Outlet    int       `db:"outlet" json:"outlet"`
	On        bool      `db:"state" json:"on"`
	Source    string    `db:"source" json:"source"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

const (
	SourceGet = "get"
	SourceSet = "set"
)
