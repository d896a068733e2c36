package cmd

import (
	"github.com/spf13/cobra"
)

var PduCmd = &cobra.Command{
	Use:   "pdu",
	Short: "Perform actions on whole Power Distribution Units (PDUs)",
	Long:  `A collection of commands that act on every outlet of an Eaton ePDU.`,
}

func init() {
	rootCmd.AddCommand(PduCmd)
}
