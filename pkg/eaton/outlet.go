// Package eaton drives the outlets of an Eaton ePDU over SNMPv1.
//
// Every Get and Set opens its own session, performs exactly one request
// and closes the session again. Nothing is cached between calls and there
// is no retry; timeouts and retransmits belong to the snmp.Dialer.
package eaton

import (
	"github.com/OpenCHAMI/pductl/pkg/snmp"
	"github.com/rs/zerolog/log"
)

const (
	Community          = "public"
	SNMPPort    uint16 = 161
	NoPort             = 0
	controlTrigger     = 1
)

type Controller struct {
	Dialer snmp.Dialer
}

func NewController(dialer snmp.Dialer) *Controller {
	return &Controller{Dialer: dialer}
}

// Set switches one outlet on or off. It writes 1 to the on or off control
// object and does not read the state back.
func (c *Controller) Set(host string, index int, on bool) error {
	if err := checkOutlet(index); err != nil {
		return err
	}

	session, err := c.Dialer.Open(host, SNMPPort, Community)
	if err != nil {
		return &ProtocolError{Op: "set", Host: host, Outlet: index, Err: err}
	}
	defer closeSession(session, host)

	oid := ObjectAddress(index, Write(DirectionFor(on)))
	log.Debug().Str("host", host).Int("outlet", index).Str("oid", oid).Bool("on", on).Msg("setting outlet")
	if err := session.Set(oid, controlTrigger); err != nil {
		return &ProtocolError{Op: "set", Host: host, Outlet: index, Err: err}
	}
	return nil
}

// Get reads the power state of one outlet.
func (c *Controller) Get(host string, index int) (bool, error) {
	if err := checkOutlet(index); err != nil {
		return false, err
	}

	session, err := c.Dialer.Open(host, SNMPPort, Community)
	if err != nil {
		return false, &ProtocolError{Op: "get", Host: host, Outlet: index, Err: err}
	}
	defer closeSession(session, host)

	oid := ObjectAddress(index, Read())
	raw, err := session.Get(oid)
	if err != nil {
		return false, &ProtocolError{Op: "get", Host: host, Outlet: index, Err: err}
	}
	log.Debug().Str("host", host).Int("outlet", index).Str("status", Status(raw).String()).Msg("read outlet status")

	on, err := DecodeStatus(raw)
	if err != nil {
		return false, &ProtocolError{Op: "get", Host: host, Outlet: index, Err: err}
	}
	return on, nil
}

// PowerSet is Set with the port argument of the generic power driver
// interface. This device has no port, so port must be NoPort.
func (c *Controller) PowerSet(host string, port int, index int, on bool) error {
	if port != NoPort {
		return contractErrorf("port %d given but device takes no port", port)
	}
	return c.Set(host, index, on)
}

func (c *Controller) PowerGet(host string, port int, index int) (bool, error) {
	if port != NoPort {
		return false, contractErrorf("port %d given but device takes no port", port)
	}
	return c.Get(host, index)
}

var DefaultController = NewController(snmp.NewDialer())

func PowerSet(host string, port int, index int, on bool) error {
	return DefaultController.PowerSet(host, port, index, on)
}

func PowerGet(host string, port int, index int) (bool, error) {
	return DefaultController.PowerGet(host, port, index)
}

func closeSession(session snmp.Session, host string) {
	if err := session.Close(); err != nil {
		log.Warn().Err(err).Str("host", host).Msg("could not close SNMP session")
	}
}
