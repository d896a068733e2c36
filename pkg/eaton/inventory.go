package eaton

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/OpenCHAMI/pductl/pkg/pdu"
)

// Inventory reads the state of every outlet on host. Each outlet is a
// separate Get. Outlets that fail are left out of the result and their
// errors are joined into the returned error.
func (c *Controller) Inventory(host string) (*pdu.PDUInventory, error) {
	inventory := &pdu.PDUInventory{
		Hostname: host,
		Model:    "Eaton ePDU",
		Outlets:  make([]pdu.PDUOutlet, 0, NumberOfOutlets),
	}

	var errs []error
	for index := 1; index <= NumberOfOutlets; index++ {
		on, err := c.Get(host, index)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		inventory.Outlets = append(inventory.Outlets, pdu.PDUOutlet{
			ID:         strconv.Itoa(index),
			Name:       fmt.Sprintf("Outlet_%d", index),
			PowerState: pdu.PowerStateFor(on),
		})
	}
	return inventory, errors.Join(errs...)
}
