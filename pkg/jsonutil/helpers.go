// Package jsonutil provides JSON helpers for item metadata.
//
// Item metadata is an opaque string→string mapping used to correlate
// loaded series with externally stored markings. These helpers give
// it a canonical serialized form so it can be used as a storage key
// and as a duplicate-load fingerprint.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint returns a canonical, order-insensitive representation
// of a metadata mapping: "k1=v1;k2=v2;..." with keys sorted.
// Two metadata maps with the same entries always produce the same
// fingerprint, which is what the duplicate-load guard keys on.
func Fingerprint(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(metadata[k])
	}
	return b.String()
}

// MarshalMetadata serializes a metadata mapping to JSON with sorted
// keys (encoding/json sorts map keys), suitable as a storage column.
// An empty mapping serializes to "{}".
func MarshalMetadata(metadata map[string]string) string {
	if metadata == nil {
		return "{}"
	}
	return MustMarshal(metadata)
}

// UnmarshalMetadata parses a metadata JSON column back to a mapping.
// Returns an empty mapping for empty or invalid input rather than
// failing: metadata is supplementary.
func UnmarshalMetadata(s string) map[string]string {
	result := make(map[string]string)
	if s == "" {
		return result
	}
	json.Unmarshal([]byte(s), &result)
	return result
}

// MustMarshal marshals a value to JSON, panicking on error.
// Use only for values known to be marshalable (e.g., maps, slices).
func MustMarshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("jsonutil.MustMarshal: %v", err))
	}
	return string(b)
}

// PrettyJSON formats a JSON string with indentation for display.
// Returns the original string if it's not valid JSON.
func PrettyJSON(s string) string {
	var obj interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return s
	}
	pretty, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return s
	}
	return string(pretty)
}
