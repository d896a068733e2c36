package cmd

import (
	"fmt"
	"time"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type outletResult struct {
	status string
	err    error
}

// The `outlet` command gets and sets outlet power states on a single PDU.
var outletCmd = &cobra.Command{
	Use:   "outlet",
	Short: "Get and set outlet power states",
	Long:  "Query, switch and power-cycle individual outlets (1-16) of an Eaton ePDU.",
}

var outletGetCmd = &cobra.Command{
	Use: "get <host> <outlet>...",
	Example: `  // get the state of outlet 5
  pductl outlet get pdu1.lab 5
  // several outlets at once
  pductl outlet get pdu1.lab 1 2 3 -j 3`,
	Short: "Get outlet power states",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		indices, err := parseOutlets(args[1:])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		ctl := newController()
		results := concurrentHelper(workerCount(len(indices)), indices, func(index int) outletResult {
			on, err := ctl.Get(host, index)
			if err != nil {
				log.Error().Err(err).Msgf("failed to get state of outlet %d", index)
				return outletResult{status: "unknown", err: err}
			}
			return outletResult{status: stateString(on)}
		})

		states := make([]cache.OutletState, 0, len(results))
		for _, index := range indices {
			if results[index].err == nil {
				states = append(states, outletState(host, index, results[index].status == "on", cache.SourceGet))
			}
		}
		recordStates(states...)
		return printResults(cmd, indices, results)
	},
}

var outletSetCmd = &cobra.Command{
	Use: "set <host> <on|off> <outlet>...",
	Example: `  // switch outlet 5 on
  pductl outlet set pdu1.lab on 5
  // switch outlets 1 and 2 off
  pductl outlet set pdu1.lab off 1 2`,
	Short: "Switch outlets on or off",
	Long:  "Switch outlets on or off. The PDU may report a pending state for a moment afterwards.",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		on, err := parseState(args[1])
		if err != nil {
			return err
		}
		indices, err := parseOutlets(args[2:])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		ctl := newController()
		results := concurrentHelper(workerCount(len(indices)), indices, func(index int) outletResult {
			if err := ctl.Set(host, index, on); err != nil {
				log.Error().Err(err).Msgf("failed to set outlet %d %s", index, stateString(on))
				return outletResult{status: "failure", err: err}
			}
			return outletResult{status: "success"}
		})

		states := make([]cache.OutletState, 0, len(results))
		for _, index := range indices {
			if results[index].err == nil {
				states = append(states, outletState(host, index, on, cache.SourceSet))
			}
		}
		recordStates(states...)
		return printResults(cmd, indices, results)
	},
}

var outletCycleCmd = &cobra.Command{
	Use: "cycle <host> <outlet>...",
	Example: `  // power-cycle outlet 5 with a 10 second off time
  pductl outlet cycle pdu1.lab 5 --delay 10s`,
	Short: "Power-cycle outlets",
	Long:  "Switch outlets off, wait for --delay, then switch them back on.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		indices, err := parseOutlets(args[1:])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		delay := viper.GetDuration("outlet.cycle-delay")
		ctl := newController()
		results := concurrentHelper(workerCount(len(indices)), indices, func(index int) outletResult {
			if err := ctl.Set(host, index, false); err != nil {
				log.Error().Err(err).Msgf("failed to switch outlet %d off", index)
				return outletResult{status: "failure", err: err}
			}
			time.Sleep(delay)
			if err := ctl.Set(host, index, true); err != nil {
				log.Error().Err(err).Msgf("failed to switch outlet %d back on", index)
				return outletResult{status: "failure", err: err}
			}
			return outletResult{status: "success"}
		})

		states := make([]cache.OutletState, 0, len(results))
		for _, index := range indices {
			if results[index].err == nil {
				states = append(states, outletState(host, index, true, cache.SourceSet))
			}
		}
		recordStates(states...)
		return printResults(cmd, indices, results)
	},
}

func printResults(cmd *cobra.Command, indices []int, results map[int]outletResult) error {
	var errs []error
	for _, index := range indices {
		result := results[index]
		fmt.Fprintf(cmd.OutOrStdout(), "%d:\t%s\n", index, result.status)
		if result.err != nil {
			errs = append(errs, result.err)
		}
	}
	if util.HasErrors(errs) {
		return fmt.Errorf("%d of %d outlet operations failed:\n%w", len(errs), len(indices), util.FormatErrorList(errs))
	}
	return nil
}

func init() {
	addFlag("outlet.cycle-delay", outletCycleCmd, "delay", "d", 5*time.Second, "Time to keep outlets off while cycling")

	outletCmd.AddCommand(outletGetCmd, outletSetCmd, outletCycleCmd)
	rootCmd.AddCommand(outletCmd)
}
