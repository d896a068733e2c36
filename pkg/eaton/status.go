package eaton

import "fmt"

// Status is the raw value of an outlet status object.
type Status int

const (
	StatusOff        Status = 0
	StatusOn         Status = 1
	StatusPendingOff Status = 2
	StatusPendingOn  Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusOff:
		return "off"
	case StatusOn:
		return "on"
	case StatusPendingOff:
		return "pending-off"
	case StatusPendingOn:
		return "pending-on"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// DecodeStatus collapses the device status into on/off. Pending states
// count as the state they are moving towards, so a read right after a
// set may report the commanded state before the relay has settled.
func DecodeStatus(raw int) (bool, error) {
	switch Status(raw) {
	case StatusOn, StatusPendingOn:
		return true, nil
	case StatusOff, StatusPendingOff:
		return false, nil
	default:
		return false, fmt.Errorf("%w (raw value %d)", ErrUnknownStatus, raw)
	}
}
