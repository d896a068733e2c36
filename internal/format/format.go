package format

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type DataFormat string

const (
	FORMAT_LIST DataFormat = "list"
	FORMAT_JSON DataFormat = "json"
	FORMAT_YAML DataFormat = "yaml"
)

func (df DataFormat) String() string {
	return string(df)
}

func (df *DataFormat) Set(v string) error {
	switch DataFormat(v) {
	case FORMAT_LIST, FORMAT_JSON, FORMAT_YAML:
		*df = DataFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of %v", []DataFormat{
			FORMAT_LIST, FORMAT_JSON, FORMAT_YAML,
		})
	}
}

func (df DataFormat) Type() string {
	return "DataFormat"
}

// Marshal marshals arbitrary data into a byte slice formatted as outFormat.
// The list format is rendered by the caller, so it is rejected here.
func Marshal(data any, outFormat DataFormat) ([]byte, error) {
	switch outFormat {
	case FORMAT_JSON:
		if bytes, err := json.MarshalIndent(data, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to marshal data into JSON: %w", err)
		} else {
			return bytes, nil
		}
	case FORMAT_YAML:
		if bytes, err := yaml.Marshal(data); err != nil {
			return nil, fmt.Errorf("failed to marshal data into YAML: %w", err)
		} else {
			return bytes, nil
		}
	case FORMAT_LIST:
		return nil, fmt.Errorf("this data format cannot be marshaled")
	default:
		return nil, fmt.Errorf("unknown data format: %s", outFormat)
	}
}

// DataFormatFromFileExt picks JSON or YAML from the extension of path,
// falling back to defaultFmt.
func DataFormatFromFileExt(path string, defaultFmt DataFormat) DataFormat {
	switch filepath.Ext(path) {
	case ".json", ".JSON":
		return FORMAT_JSON
	case ".yaml", ".yml", ".YAML", ".YML":
		return FORMAT_YAML
	}
	return defaultFmt
}
