package eaton

import "fmt"

const (
	// OID is the root of the Eaton ePDU outlet table.
	OID             = ".1.3.6.1.4.1.534.6.6.7.6.6.1"
	NumberOfOutlets = 16
)

const (
	statusSubtree = 2
	offSubtree    = 3
	onSubtree     = 4
)

// Direction selects which of the two control objects is written. The
// device models "turn on" and "turn off" as separate writable objects.
type Direction int

const (
	TurnOff Direction = iota
	TurnOn
)

func DirectionFor(on bool) Direction {
	if on {
		return TurnOn
	}
	return TurnOff
}

func (d Direction) String() string {
	if d == TurnOn {
		return "on"
	}
	return "off"
}

// Operation is either a status read or a control write in one direction.
// Build one with Read or Write.
type Operation struct {
	write     bool
	direction Direction
}

func Read() Operation {
	return Operation{}
}

func Write(d Direction) Operation {
	return Operation{write: true, direction: d}
}

func (op Operation) IsWrite() bool {
	return op.write
}

func (op Operation) Direction() Direction {
	return op.direction
}

func (op Operation) String() string {
	if !op.write {
		return "read"
	}
	return "write " + op.direction.String()
}

func (op Operation) subtree() int {
	switch {
	case !op.write:
		return statusSubtree
	case op.direction == TurnOn:
		return onSubtree
	default:
		return offSubtree
	}
}

// ValidOutlet reports whether index addresses an outlet on the device.
func ValidOutlet(index int) bool {
	return index >= 1 && index <= NumberOfOutlets
}

// ObjectAddress returns the OID to read or write for the given outlet.
// The index must already be validated; an out-of-range index panics.
func ObjectAddress(index int, op Operation) string {
	if !ValidOutlet(index) {
		panic(fmt.Sprintf("eaton: outlet index %d out of range [1, %d]", index, NumberOfOutlets))
	}
	return fmt.Sprintf("%s.%d.0.%d", OID, op.subtree(), index)
}
