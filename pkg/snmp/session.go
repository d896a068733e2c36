// Package snmp provides the minimal SNMP session capability the outlet
// drivers need: open a session to an agent, read one integer object,
// write one integer object, close.
//
// Sessions are not shared. Callers open one per operation and close it
// before returning.
package snmp

import (
	"errors"
	"time"
)

const (
	DefaultPort    uint16 = 161
	DefaultTimeout        = 2 * time.Second
	DefaultRetries        = 1
)

var (
	ErrNoSuchObject   = errors.New("no such object")
	ErrUnexpectedType = errors.New("unexpected value type")
	ErrEmptyResponse  = errors.New("empty response")
)

// Session is a single open SNMP session against one agent.
type Session interface {
	Get(oid string) (int, error)
	Set(oid string, value int) error
	Close() error
}

// Dialer opens sessions. Implementations must return a new, independent
// session for every call to Open.
type Dialer interface {
	Open(host string, port uint16, community string) (Session, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(host string, port uint16, community string) (Session, error)

func (f DialerFunc) Open(host string, port uint16, community string) (Session, error) {
	return f(host, port, community)
}
