package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pingcap/errors"
)

// State is the checkpointable mapping the host persists between syncs.
// It is empty for the first sync or for any full re-sync.
type State map[string]interface{}

// GetString returns the string stored under key, or def when the key is
// absent or not a string.
func (s State) GetString(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// GetInt returns the integer stored under key, or def when the key is
// absent. JSON round-trips integers as float64, so both are accepted.
func (s State) GetInt(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Clone returns a shallow copy, so a checkpointed state is isolated from
// later mutation by the connector.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FileStore persists state to a JSON file, standing in for the host's
// checkpoint storage when a connector runs locally.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state file. A missing file yields an empty state, which is
// what a first sync sees.
func (f *FileStore) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return nil, errors.Annotatef(err, "Failed to read state file %s", f.path)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Annotatef(err, "Failed to parse state file %s", f.path)
	}
	return st, nil
}

// Save writes the state file atomically via a rename, so a crash mid-write
// never leaves a torn checkpoint behind.
func (f *FileStore) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return errors.Trace(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.json")
	if err != nil {
		return errors.Trace(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Trace(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Trace(err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Annotatef(err, "Failed to replace state file %s", f.path)
	}
	return nil
}
