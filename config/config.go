package config

import (
	"encoding/json"
	"os"

	"github.com/pingcap/errors"
)

// Configuration holds the secrets and parameters supplied at deploy time.
// All values are strings, matching what the host hands to a connector.
type Configuration map[string]string

// LoadFile reads a configuration from a JSON file, e.g. the
// configuration.json used when running a connector locally.
func LoadFile(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Failed to read configuration file %s", path)
	}
	var conf Configuration
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, errors.Annotatef(err, "Failed to parse configuration file %s", path)
	}
	return conf, nil
}

// Get returns the value for key, or def when the key is absent or empty.
func (c Configuration) Get(key, def string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}
	return def
}

// Require returns the value for key, or an error naming the missing key.
func (c Configuration) Require(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == "" {
		return "", errors.Errorf("missing %s in configuration", key)
	}
	return v, nil
}
