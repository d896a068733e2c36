package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/cache/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cacheFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage outlet states recorded in the cache.",
	Long: "Every successful outlet get or set is recorded in a local SQLite cache,\n" +
		"keeping the latest state per outlet. Use --disable-cache to skip recording.",
}

// The `cache list` command shows the last known state of each outlet.
var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List outlet states stored in the cache",
	Example: `  pductl cache list
  pductl cache list --cache ./outlets.db --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := sqlite.GetOutletStates(viper.GetString("cache"))
		if err != nil {
			return fmt.Errorf("failed to get outlet states: %w", err)
		}
		if strings.ToLower(cacheFormat) == "json" {
			b, err := json.Marshal(states)
			if err != nil {
				return fmt.Errorf("failed to marshal outlet states: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", string(b))
			return nil
		}
		for _, s := range states {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\t%s (%s) @ %s\n", s.Host, s.Outlet, stateString(s.On), s.Source, s.Timestamp.Format(time.UnixDate))
		}
		return nil
	},
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "remove <host>[:<outlet>]...",
	Short: "Remove hosts or single outlets from the cache.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		states := make([]cache.OutletState, 0, len(args))
		for _, arg := range args {
			states = append(states, parseCacheTarget(arg))
		}
		return sqlite.DeleteOutletStates(viper.GetString("cache"), states...)
	},
}

// parseCacheTarget splits "host:outlet". A suffix that is not a number is
// treated as part of the host.
func parseCacheTarget(arg string) cache.OutletState {
	if i := strings.LastIndex(arg, ":"); i > 0 {
		if outlet, err := strconv.Atoi(arg[i+1:]); err == nil {
			return cache.OutletState{Host: arg[:i], Outlet: outlet}
		}
	}
	return cache.OutletState{Host: arg}
}

func init() {
	cacheListCmd.Flags().StringVar(&cacheFormat, "format", "", "Set the output format (json)")
	cacheCmd.AddCommand(cacheListCmd, cacheRemoveCmd)
	rootCmd.AddCommand(cacheCmd)
}
