package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"intern-watch/internal/dedup"
)

// stateDoc is the current serialized shape. The legacy shape — a bare JSON
// array of fingerprints with no flag — is still accepted on decode and
// upgraded transparently.
type stateDoc struct {
	Seen         []string `json:"seen"`
	IdleNotified bool     `json:"idle_notified"`
}

// Encode serializes state with the fingerprint list sorted, so repeated
// saves of the same state are byte-identical.
func Encode(state *dedup.State) ([]byte, error) {
	fps := state.Fingerprints()
	sort.Strings(fps)

	data, err := json.Marshal(stateDoc{Seen: fps, IdleNotified: state.IdleNotified})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode accepts either the current object shape or the legacy bare array,
// normalizing both to one in-memory representation.
func Decode(data []byte) (*dedup.State, error) {
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err == nil {
		return dedup.Restore(doc.Seen, doc.IdleNotified), nil
	}

	var legacy []string
	if err := json.Unmarshal(data, &legacy); err == nil {
		return dedup.Restore(legacy, false), nil
	}

	return nil, fmt.Errorf("unrecognized state format")
}
