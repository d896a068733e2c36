package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/format"
	"github.com/OpenCHAMI/pductl/internal/util"
	"github.com/OpenCHAMI/pductl/pkg/pdu"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pduStatusCmd = &cobra.Command{
	Use: "status <host>...",
	Example: `  // all outlets as JSON
  pductl pdu status pdu1.lab
  // several PDUs as YAML
  pductl pdu status pdu1.lab pdu2.lab -F yaml
  // write to a file, format taken from the extension
  pductl pdu status pdu1.lab -o pdu1.yaml`,
	Short: "Show the state of every outlet",
	Long:  "Reads all outlets of one or more Eaton ePDUs and prints the inventory.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var outFormat format.DataFormat
		if err := outFormat.Set(viper.GetString("pdu.format")); err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		cmd.SilenceUsage = true

		ctl := newController()
		inventories := make([]*pdu.PDUInventory, 0, len(args))
		var errs []error
		for _, host := range args {
			log.Info().Msgf("Collecting from PDU: %s", host)
			inventory, err := ctl.Inventory(host)
			if err != nil {
				log.Error().Err(err).Msgf("failed to read some outlets of PDU %s", host)
				errs = append(errs, err)
			}
			states := make([]cache.OutletState, 0, len(inventory.Outlets))
			for i, outlet := range inventory.Outlets {
				states = append(states, outletState(host, outletIndex(outlet, i), outlet.PowerState == pdu.PowerStateOn, cache.SourceGet))
			}
			recordStates(states...)
			inventories = append(inventories, inventory)
		}

		output := viper.GetString("pdu.output")
		if output != "" {
			outFormat = format.DataFormatFromFileExt(output, outFormat)
		}
		b, err := renderInventories(inventories, outFormat)
		if err != nil {
			return err
		}
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), string(b))
		} else {
			if err := util.MakeParentDirectory(output); err != nil {
				return fmt.Errorf("failed to make output directory: %w", err)
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("failed to write inventory to '%s': %w", output, err)
			}
			log.Info().Str("path", output).Str("format", outFormat.String()).Msg("wrote PDU inventory")
		}

		if util.HasErrors(errs) {
			return fmt.Errorf("failed to read some outlets:\n%w", util.FormatErrorList(errs))
		}
		return nil
	},
}

func renderInventories(inventories []*pdu.PDUInventory, outFormat format.DataFormat) ([]byte, error) {
	if outFormat != format.FORMAT_LIST {
		b, err := format.Marshal(inventories, outFormat)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
	var buf bytes.Buffer
	for _, inventory := range inventories {
		for _, outlet := range inventory.Outlets {
			fmt.Fprintf(&buf, "%s\t%s\t%s\n", inventory.Hostname, outlet.ID, outlet.PowerState)
		}
	}
	return buf.Bytes(), nil
}

func outletIndex(outlet pdu.PDUOutlet, position int) int {
	index, err := strconv.Atoi(outlet.ID)
	if err != nil {
		return position + 1
	}
	return index
}

func init() {
	addFlag("pdu.format", pduStatusCmd, "format", "F", string(format.FORMAT_JSON), "Set the output format (json|yaml|list)")
	addFlag("pdu.output", pduStatusCmd, "output", "o", "", "Write the inventory to a file; .json/.yaml extensions select the format")
	PduCmd.AddCommand(pduStatusCmd)
}
