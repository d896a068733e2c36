package eaton

import (
	"errors"
	"fmt"
)

var ErrUnknownStatus = errors.New("failed to get status value")

// ContractError reports caller misuse: an outlet index outside the device
// range or a port where none is accepted. Nothing is sent to the device.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string {
	return "contract violation: " + e.Msg
}

func contractErrorf(format string, args ...any) error {
	return &ContractError{Msg: fmt.Sprintf(format, args...)}
}

// IsContractError reports whether err is, or wraps, a *ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// ProtocolError wraps a session failure or an unrecognized device response.
type ProtocolError struct {
	Op     string
	Host   string
	Outlet int
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("failed to %s outlet %d on %s: %v", e.Op, e.Outlet, e.Host, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func checkOutlet(index int) error {
	if !ValidOutlet(index) {
		return contractErrorf("outlet index %d out of range [1, %d]", index, NumberOfOutlets)
	}
	return nil
}
