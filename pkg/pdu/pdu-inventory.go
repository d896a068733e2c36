package pdu

const (
	PowerStateOn  = "ON"
	PowerStateOff = "OFF"
)

type PDUOutlet struct {
	ID         string `json:"id" yaml:"id"`                   // e.g., "5"
	Name       string `json:"name" yaml:"name"`               // e.g., "Outlet_5"
	PowerState string `json:"power_state" yaml:"power_state"` // "ON" or "OFF"
}

type PDUInventory struct {
	Hostname        string      `json:"hostname" yaml:"hostname"`
	Model           string      `json:"model,omitempty" yaml:"model,omitempty"`
	SerialNumber    string      `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	FirmwareVersion string      `json:"firmware_version,omitempty" yaml:"firmware_version,omitempty"`
	Outlets         []PDUOutlet `json:"outlets" yaml:"outlets"`
}

func PowerStateFor(on bool) string {
	if on {
		return PowerStateOn
	}
	return PowerStateOff
}
