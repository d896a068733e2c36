package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/cache/sqlite"
	"github.com/OpenCHAMI/pductl/pkg/eaton"
	"github.com/OpenCHAMI/pductl/pkg/snmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePDU is an in-memory Eaton PDU. Every outlet reads as off unless
// listed in status.
type fakePDU struct {
	mu     sync.Mutex
	status map[int]int
	opens  int
	sets   []string
}

func (p *fakePDU) Open(host string, port uint16, community string) (snmp.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opens++
	return &fakeSession{pdu: p}, nil
}

type fakeSession struct {
	pdu *fakePDU
}

func (s *fakeSession) Get(oid string) (int, error) {
	s.pdu.mu.Lock()
	defer s.pdu.mu.Unlock()
	for index, status := range s.pdu.status {
		if oid == eaton.ObjectAddress(index, eaton.Read()) {
			return status, nil
		}
	}
	return int(eaton.StatusOff), nil
}

func (s *fakeSession) Set(oid string, value int) error {
	s.pdu.mu.Lock()
	defer s.pdu.mu.Unlock()
	s.pdu.sets = append(s.pdu.sets, oid)
	return nil
}

func (s *fakeSession) Close() error { return nil }

func useFakePDU(t *testing.T, p *fakePDU) {
	t.Helper()
	orig := newDialer
	newDialer = func() snmp.Dialer { return p }
	t.Cleanup(func() { newDialer = orig })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "disabled"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOutletGet(t *testing.T) {
	p := &fakePDU{status: map[int]int{5: int(eaton.StatusPendingOn)}}
	useFakePDU(t, p)

	out, err := run(t, "outlet", "get", "pdu1", "6", "5", "--disable-cache")
	require.NoError(t, err)
	assert.Equal(t, "5:\ton\n6:\toff\n", out)
	assert.Equal(t, 2, p.opens)
	assert.Empty(t, p.sets)
}

func TestOutletGetOutOfRange(t *testing.T) {
	p := &fakePDU{}
	useFakePDU(t, p)

	out, err := run(t, "outlet", "get", "pdu1", "17", "--disable-cache")
	require.Error(t, err)
	assert.Contains(t, out, "17:\tunknown")
	assert.Contains(t, err.Error(), "contract violation")
	assert.Equal(t, 0, p.opens)
}

func TestOutletSet(t *testing.T) {
	p := &fakePDU{}
	useFakePDU(t, p)

	out, err := run(t, "outlet", "set", "pdu1", "on", "5", "--disable-cache")
	require.NoError(t, err)
	assert.Equal(t, "5:\tsuccess\n", out)
	assert.Equal(t, []string{eaton.ObjectAddress(5, eaton.Write(eaton.TurnOn))}, p.sets)
}

func TestOutletSetBadState(t *testing.T) {
	p := &fakePDU{}
	useFakePDU(t, p)

	_, err := run(t, "outlet", "set", "pdu1", "sideways", "5", "--disable-cache")
	assert.Error(t, err)
	assert.Empty(t, p.sets)
}

func TestOutletCycle(t *testing.T) {
	p := &fakePDU{}
	useFakePDU(t, p)

	out, err := run(t, "outlet", "cycle", "pdu1", "3", "--delay", "0s", "--disable-cache")
	require.NoError(t, err)
	assert.Equal(t, "3:\tsuccess\n", out)
	assert.Equal(t, []string{
		eaton.ObjectAddress(3, eaton.Write(eaton.TurnOff)),
		eaton.ObjectAddress(3, eaton.Write(eaton.TurnOn)),
	}, p.sets)
}

func TestOutletGetRecordsCache(t *testing.T) {
	p := &fakePDU{status: map[int]int{2: int(eaton.StatusOn)}}
	useFakePDU(t, p)
	path := filepath.Join(t.TempDir(), "cache", "outlets.db")

	_, err := run(t, "outlet", "get", "pdu1", "2", "--cache", path, "--disable-cache=false")
	require.NoError(t, err)

	states, err := sqlite.GetOutletStates(path)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "pdu1", states[0].Host)
	assert.Equal(t, 2, states[0].Outlet)
	assert.True(t, states[0].On)
	assert.Equal(t, cache.SourceGet, states[0].Source)

	out, err := run(t, "cache", "list", "--cache", path, "--disable-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "pdu1:2\ton (get)")
}

func TestPDUStatusList(t *testing.T) {
	p := &fakePDU{status: map[int]int{1: int(eaton.StatusOn)}}
	useFakePDU(t, p)

	out, err := run(t, "pdu", "status", "pdu1", "-F", "list", "--disable-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "pdu1\t1\tON\n")
	assert.Contains(t, out, "pdu1\t16\tOFF\n")
	assert.Equal(t, eaton.NumberOfOutlets, p.opens)
}

func TestPDUStatusOutputFile(t *testing.T) {
	p := &fakePDU{status: map[int]int{4: int(eaton.StatusOn)}}
	useFakePDU(t, p)
	t.Cleanup(func() { pduStatusCmd.Flags().Set("output", "") })
	path := filepath.Join(t.TempDir(), "out", "pdu1.yml")

	out, err := run(t, "pdu", "status", "pdu1", "-F", "json", "-o", path, "--disable-cache")
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hostname: pdu1")
	assert.Regexp(t, `id: "?4"?\n\s+name: Outlet_4\n\s+power_state: "?ON"?`, string(b))
}

func TestWriteStatesConcurrently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "outlets.db")

	var wg sync.WaitGroup
	for index := 1; index <= eaton.NumberOfOutlets; index++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			writeStates(path, outletState("pdu1", index, index%2 == 0, cache.SourceSet))
		}(index)
	}
	wg.Wait()

	states, err := sqlite.GetOutletStates(path)
	require.NoError(t, err)
	assert.Len(t, states, eaton.NumberOfOutlets)
}

func TestParseOutlets(t *testing.T) {
	indices, err := parseOutlets([]string{"5", "1", "5", "16"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 16}, indices)

	_, err = parseOutlets([]string{"five"})
	assert.Error(t, err)
}

func TestParseState(t *testing.T) {
	for arg, want := range map[string]bool{"on": true, "OFF": false, "1": true, "false": false} {
		got, err := parseState(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, want, got, arg)
	}
	_, err := parseState("toggle")
	assert.Error(t, err)
}

func TestParseCacheTarget(t *testing.T) {
	assert.Equal(t, cache.OutletState{Host: "pdu1", Outlet: 4}, parseCacheTarget("pdu1:4"))
	assert.Equal(t, cache.OutletState{Host: "pdu1"}, parseCacheTarget("pdu1"))
	assert.Equal(t, cache.OutletState{Host: "pdu1:rack"}, parseCacheTarget("pdu1:rack"))
}

func TestConcurrentHelper(t *testing.T) {
	targets := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results := concurrentHelper(3, targets, func(i int) int { return i * i })
	require.Len(t, results, len(targets))
	for _, i := range targets {
		assert.Equal(t, i*i, results[i])
	}
}
