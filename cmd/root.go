// The cmd package implements the interface for the pductl CLI. The files
// contained in this package only handle CLI arguments and pass them to
// the outlet driver in pkg/eaton.
//
// For example:
//
//	cmd/outlet.go     --> pkg/eaton/outlet.go    ( eaton.Controller.Get/Set )
//	cmd/pdu-status.go --> pkg/eaton/inventory.go ( eaton.Controller.Inventory )
//	cmd/daemon.go     --> pkg/daemon/daemon.go   ( daemon.RunServer )
package cmd

import (
	"fmt"
	"os"

	pductl "github.com/OpenCHAMI/pductl/internal"
	logger "github.com/OpenCHAMI/pductl/internal/log"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// The `root` command doesn't do anything on it's own except display
// a help message and then exits.
var rootCmd = &cobra.Command{
	Use:   "pductl",
	Short: "Eaton ePDU outlet control",
	Long:  "Query and switch the outlets of Eaton ePDUs over SNMP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level logger.LogLevel
		if err := level.Set(viper.GetString("log-level")); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		return logger.InitWithLogLevel(level, viper.GetString("log-file"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			err := cmd.Help()
			if err != nil {
				log.Error().Err(err).Msg("failed to print help")
			}
		}
	},
}

// This Execute() function is called from main to run the CLI.
func Execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pductl.SetDefaults()
	cobra.OnInitialize(InitializeConfig)
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().IntP("concurrency", "j", -1, "Set the number of concurrent outlet operations")
	rootCmd.PersistentFlags().IntP("timeout", "t", 2, "Set the SNMP request timeout in seconds")
	rootCmd.PersistentFlags().Int("retries", 1, "Set the number of SNMP retransmits per request")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Set the config file path")
	rootCmd.PersistentFlags().String("log-level", string(logger.INFO), fmt.Sprintf("Set the log level %v", logger.Levels))
	rootCmd.PersistentFlags().String("log-file", "", "Also append logs to this file")
	rootCmd.PersistentFlags().Bool("snmp-trace", false, "Log SNMP packets")
	rootCmd.PersistentFlags().String("cache", pductl.DefaultCachePath(), "Set the outlet state cache path")
	rootCmd.PersistentFlags().Bool("disable-cache", false, "Do not record outlet states in the cache")

	// bind viper config flags with cobra
	for _, name := range []string{
		"concurrency", "timeout", "retries", "config", "log-level",
		"log-file", "snmp-trace", "cache", "disable-cache",
	} {
		checkBindFlagError(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

func checkBindFlagError(err error) {
	if err != nil {
		log.Error().Err(err).Msg("failed to bind cobra/viper flag")
	}
}

// InitializeConfig() loads the config file given by --config, or
// $XDG_CONFIG_HOME/pductl/config.* when one exists.
func InitializeConfig() {
	viper.SetEnvPrefix("PDUCTL")
	viper.AutomaticEnv()
	if path := viper.GetString("config"); path != "" {
		if err := pductl.LoadConfig(path); err != nil {
			log.Error().Err(err).Msg("failed to load config")
		}
		return
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = "$HOME/.config"
	}
	viper.AddConfigPath(configDir + "/pductl")
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("no config file found; using flags and defaults")
		} else {
			log.Error().Err(err).Msg("failed to load config file")
		}
	}
}
