package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/cache/sqlite"
	logger "github.com/OpenCHAMI/pductl/internal/log"
	"github.com/OpenCHAMI/pductl/internal/util"
	"github.com/OpenCHAMI/pductl/pkg/eaton"
	"github.com/OpenCHAMI/pductl/pkg/snmp"
	"github.com/cznic/mathutil"
	"github.com/gosnmp/gosnmp"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newDialer builds the SNMP dialer from the timeout/retry flags. Tests
// replace it with a fake.
var newDialer = func() snmp.Dialer {
	dialer := &snmp.GoSNMPDialer{
		Timeout: time.Duration(viper.GetInt("timeout")) * time.Second,
		Retries: viper.GetInt("retries"),
	}
	if viper.GetBool("snmp-trace") {
		dialer.Logger = gosnmp.NewLogger(logger.NewTraceLogger(logrus.DebugLevel, nil))
	}
	return dialer
}

func newController() *eaton.Controller {
	return eaton.NewController(newDialer())
}

func addFlag(key string, cmd *cobra.Command, name, shorthand string, value any, usage string) {
	switch v := value.(type) {
	case string:
		cmd.Flags().StringP(name, shorthand, v, usage)
	case bool:
		cmd.Flags().BoolP(name, shorthand, v, usage)
	case int:
		cmd.Flags().IntP(name, shorthand, v, usage)
	case time.Duration:
		cmd.Flags().DurationP(name, shorthand, v, usage)
	default:
		panic(fmt.Sprintf("addFlag: unsupported flag type %T", value))
	}
	checkBindFlagError(viper.BindPFlag(key, cmd.Flags().Lookup(name)))
}

// parseOutlets converts outlet arguments to indices, sorted and without
// duplicates. Range checks are left to the driver.
func parseOutlets(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		index, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid outlet index '%s': %w", arg, err)
		}
		indices = append(indices, index)
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}

func parseState(arg string) (bool, error) {
	switch arg {
	case "on", "ON", "On":
		return true, nil
	case "off", "OFF", "Off":
		return false, nil
	}
	on, err := strconv.ParseBool(arg)
	if err != nil {
		return false, fmt.Errorf("invalid outlet state '%s' (expected on or off)", arg)
	}
	return on, nil
}

// workerCount returns --concurrency, or one worker per target when unset.
func workerCount(targets int) int {
	concurrency := viper.GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = mathutil.Clamp(targets, 1, eaton.NumberOfOutlets)
	}
	return concurrency
}

// concurrentHelper runs runner over targets with a fixed number of workers
// and collects the results by target.
func concurrentHelper[T any](concurrency int, targets []int, runner func(int) T) map[int]T {
	type result struct {
		target int
		value  T
	}
	dataChannel := make(chan int, 1)
	returnChannel := make(chan result, concurrency)
	results := make(map[int]T, len(targets))
	var wg sync.WaitGroup

	// Worker threads
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for target := range dataChannel {
				returnChannel <- result{target, runner(target)}
			}
		}()
	}

	// Receive worker results
	done := make(chan struct{})
	go func() {
		for r := range returnChannel {
			results[r.target] = r.value
		}
		close(done)
	}()

	// Dispatch data and wait for processing completion
	for _, target := range targets {
		dataChannel <- target
	}
	close(dataChannel)
	wg.Wait()
	close(returnChannel)
	<-done

	return results
}

// cacheMu serializes cache writes; the daemon records from concurrent
// requests and sqlite allows a single writer.
var cacheMu sync.Mutex

// recordStates stores outlet states in the cache unless caching is disabled.
// Cache failures are logged, never returned.
func recordStates(states ...cache.OutletState) {
	if viper.GetBool("disable-cache") || len(states) == 0 {
		return
	}
	writeStates(viper.GetString("cache"), states...)
}

func writeStates(path string, states ...cache.OutletState) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if err := util.MakeParentDirectory(path); err != nil {
		log.Warn().Err(err).Str("cache", path).Msg("could not make cache directory")
		return
	}
	if err := sqlite.InsertOutletStates(path, states...); err != nil {
		log.Warn().Err(err).Str("cache", path).Msg("failed to record outlet states")
	}
}

func outletState(host string, index int, on bool, source string) cache.OutletState {
	return cache.OutletState{
		Host:      host,
		Outlet:    index,
		On:        on,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
}

func stateString(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
