package fileio

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// modConfigFile is the TOML shape of a server's stored mod choices. Values
// under mods are either a bare bool or a table with a value key and nested
// per-sub-module choices, decoded later by the enablement policy.
type modConfigFile struct {
	Mods map[string]interface{} `toml:"mods"`
}

// LoadModConfig reads the player's stored enable/disable choices for one
// server. A missing file means no choices stored.
func LoadModConfig(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}

	var file modConfigFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if file.Mods == nil {
		file.Mods = map[string]interface{}{}
	}
	return file.Mods, nil
}

// SaveModConfig writes the choices back.
func SaveModConfig(path string, mods map[string]interface{}) error {
	raw, err := toml.Marshal(modConfigFile{Mods: mods})
	if err != nil {
		return err
	}

	f, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(raw)
	return err
}
