package snmp

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

// GoSNMPDialer opens SNMPv1 sessions using gosnmp. Timeout and retry policy
// live here and nowhere else.
type GoSNMPDialer struct {
	Timeout time.Duration
	Retries int
	Logger  gosnmp.Logger
}

// NewDialer returns a dialer with the default timeout and retry count.
func NewDialer() *GoSNMPDialer {
	return &GoSNMPDialer{
		Timeout: DefaultTimeout,
		Retries: DefaultRetries,
	}
}

func (d *GoSNMPDialer) Open(host string, port uint16, community string) (Session, error) {
	if port == 0 {
		port = DefaultPort
	}
	client := &gosnmp.GoSNMP{
		Target:    host,
		Port:      port,
		Community: community,
		Version:   gosnmp.Version1,
		Timeout:   d.Timeout,
		Retries:   d.Retries,
		Logger:    d.Logger,
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", host, port, err)
	}
	return &goSession{client: client}, nil
}

type goSession struct {
	client *gosnmp.GoSNMP
}

func (s *goSession) Get(oid string) (int, error) {
	packet, err := s.client.Get([]string{oid})
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", oid, err)
	}
	if err := checkPacket(packet); err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", oid, err)
	}
	return decodeInteger(packet.Variables[0])
}

func (s *goSession) Set(oid string, value int) error {
	packet, err := s.client.Set([]gosnmp.SnmpPDU{{
		Name:  oid,
		Type:  gosnmp.Integer,
		Value: value,
	}})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", oid, err)
	}
	if err := checkPacket(packet); err != nil {
		return fmt.Errorf("failed to set %s: %w", oid, err)
	}
	return nil
}

func (s *goSession) Close() error {
	if s.client.Conn == nil {
		return nil
	}
	return s.client.Conn.Close()
}

// checkPacket rejects responses that carry an agent error status or no
// variable bindings at all.
func checkPacket(packet *gosnmp.SnmpPacket) error {
	if packet == nil || len(packet.Variables) == 0 {
		return ErrEmptyResponse
	}
	if packet.Error != gosnmp.NoError {
		return fmt.Errorf("agent returned error status %v (index %d)", packet.Error, packet.ErrorIndex)
	}
	return nil
}

func decodeInteger(pdu gosnmp.SnmpPDU) (int, error) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return 0, fmt.Errorf("%s: %w", pdu.Name, ErrNoSuchObject)
	case gosnmp.Integer:
		return int(gosnmp.ToBigInt(pdu.Value).Int64()), nil
	default:
		return 0, fmt.Errorf("%s: %w %v", pdu.Name, ErrUnexpectedType, pdu.Type)
	}
}
