package store

import (
	"bytes"
	"encoding/json"

	"github.com/sharevar/sharevar/internal/errors"
)

// Map is the decoded in-memory form of the shared variable file: variable
// names to scalar values. It is rebuilt from the file on every operation
// and never cached across calls.
type Map map[string]Value

// Decode parses raw file contents into a Map. Empty or whitespace-only
// content decodes to an empty map, so a freshly created file is usable
// immediately. Any other content that is not a JSON object of scalars is a
// corruption error; partial contents are never silently discarded, because
// proceeding with a partial map would lose data for every other process
// sharing the file.
func Decode(data []byte) (Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Map{}, nil
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(errors.ErrCorrupt, "not a JSON object of scalars: %v", err)
	}
	return m, nil
}

// Encode serializes the full Map as a compact JSON object. A nil Map
// encodes as the empty object.
func Encode(m Map) ([]byte, error) {
	if m == nil {
		m = Map{}
	}
	return json.Marshal(m)
}
