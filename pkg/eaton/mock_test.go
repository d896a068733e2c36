package eaton

import (
	"github.com/OpenCHAMI/pductl/pkg/snmp"
	"github.com/stretchr/testify/mock"
)

type mockDialer struct {
	mock.Mock
}

func (m *mockDialer) Open(host string, port uint16, community string) (snmp.Session, error) {
	args := m.Called(host, port, community)
	session, _ := args.Get(0).(snmp.Session)
	return session, args.Error(1)
}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Get(oid string) (int, error) {
	args := m.Called(oid)
	return args.Int(0), args.Error(1)
}

func (m *mockSession) Set(oid string, value int) error {
	return m.Called(oid, value).Error(0)
}

func (m *mockSession) Close() error {
	return m.Called().Error(0)
}

// newMockController returns a controller whose dialer hands out session
// for every Open on host.
func newMockController(host string, session *mockSession) (*Controller, *mockDialer) {
	dialer := &mockDialer{}
	dialer.On("Open", host, SNMPPort, Community).Return(session, nil)
	session.On("Close").Return(nil)
	return NewController(dialer), dialer
}
