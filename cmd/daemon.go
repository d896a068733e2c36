package cmd

import (
	"github.com/OpenCHAMI/pductl/pkg/daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// The `daemon` command launches a long-running server that exposes outlet control over HTTP.
var daemonCmd = &cobra.Command{
	Use: "daemon",
	Example: `  // basic launch
  pductl daemon
  // launch on all interfaces
  pductl daemon -e 0.0.0.0:8080
  // then, from elsewhere
  curl http://localhost:8080/outlets/pdu1.lab/5
  curl -X PUT -d '{"on": true}' http://localhost:8080/outlets/pdu1.lab/5`,
	Short: "Launch a long-running web server, e.g. for container use",
	Long:  "Serves GET/PUT /outlets/{host}/{outlet} and GET /pdus/{host}.",
	RunE: func(cmd *cobra.Command, args []string) error {
		record := func(host string, index int, on bool, source string) {
			recordStates(outletState(host, index, on, source))
		}
		return daemon.RunServer(viper.GetString("daemon.endpoint"), newController(), record)
	},
}

func init() {
	addFlag("daemon.endpoint", daemonCmd, "endpoint", "e", "localhost:8080", "Address for the daemon to listen on")
	rootCmd.AddCommand(daemonCmd)
}
