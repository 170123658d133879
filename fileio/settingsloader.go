package fileio

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadSettings reads the instance settings file into a flat key map. A
// missing file means no settings stored yet.
func LoadSettings(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}

	settings := map[string]interface{}{}
	if err := toml.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings writes the settings map back.
func SaveSettings(path string, settings map[string]interface{}) error {
	raw, err := toml.Marshal(settings)
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
