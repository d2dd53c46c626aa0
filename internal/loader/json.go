package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/pkg/timeutil"
)

// LoadJSON flattens a JSON document into series. Recognized shapes:
//
//   - [1, 2, 3]                          one number-indexed series
//   - {"2024-01-01T00:00:00Z": 1, ...}   index→value, time or number keys
//   - {"temp": [...], "rpm": {...}}      name→series, recursed
//   - {"series": ..., "name": ..., "metadata": {...}}  full record
//   - [[...], {...}]                     array of any of the above
//
// Nesting composes: names accumulate along the path.
func LoadJSON(r io.Reader, baseName string) ([]Loaded, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	var out []Loaded
	if err := flatten(root, baseName, nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no series found in json document")
	}
	return out, nil
}

func flatten(node interface{}, name string, metadata map[string]string, out *[]Loaded) error {
	switch v := node.(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		if _, ok := asFloat(v[0]); ok {
			s, err := numberArray(v)
			if err != nil {
				return fmt.Errorf("series %q: %w", name, err)
			}
			*out = append(*out, Loaded{Series: s, Name: name, Metadata: metadata})
			return nil
		}
		for i, child := range v {
			childName := fmt.Sprintf("%s[%d]", name, i)
			if err := flatten(child, childName, metadata, out); err != nil {
				return err
			}
		}
		return nil

	case map[string]interface{}:
		if seriesNode, ok := v["series"]; ok {
			return flattenRecord(v, seriesNode, name, metadata, out)
		}
		if s, ok, err := indexedObject(v); err != nil {
			return fmt.Errorf("series %q: %w", name, err)
		} else if ok {
			*out = append(*out, Loaded{Series: s, Name: name, Metadata: metadata})
			return nil
		}
		// Name→series object: recurse in sorted key order so output
		// is deterministic.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childName := k
			if name != "" {
				childName = name + "/" + k
			}
			if err := flatten(v[k], childName, metadata, out); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("series %q: unsupported json node %T", name, node)
	}
}

// flattenRecord handles the full record form with optional name and
// metadata fields.
func flattenRecord(record map[string]interface{}, seriesNode interface{}, name string, metadata map[string]string, out *[]Loaded) error {
	if n, ok := record["name"].(string); ok && n != "" {
		name = n
	}
	merged := map[string]string{}
	for k, v := range metadata {
		merged[k] = v
	}
	if metaNode, ok := record["metadata"].(map[string]interface{}); ok {
		for k, v := range metaNode {
			merged[k] = fmt.Sprintf("%v", v)
		}
	}
	if len(merged) == 0 {
		merged = nil
	}
	return flatten(seriesNode, name, merged, out)
}

// numberArray builds a series from a plain numeric array, indexed
// 0..n-1.
func numberArray(v []interface{}) (*series.Series, error) {
	index := make([]float64, len(v))
	values := make([]float64, len(v))
	for i, el := range v {
		f, ok := asFloat(el)
		if !ok {
			return nil, fmt.Errorf("mixed array: element %d is %T", i, el)
		}
		index[i] = float64(i)
		values[i] = f
	}
	return series.NewNumber(index, values)
}

// indexedObject tries to read a map as index→value pairs. Keys must
// all parse as numbers or all as RFC 3339 timestamps, and values must
// be numeric; otherwise ok is false and the map is treated as a
// name→series object.
func indexedObject(v map[string]interface{}) (*series.Series, bool, error) {
	if len(v) == 0 {
		return nil, false, nil
	}

	type pair struct {
		x float64
		y float64
	}
	pairs := make([]pair, 0, len(v))
	kind := series.KindNumber
	first := true
	for k, raw := range v {
		y, ok := asFloat(raw)
		if !ok {
			return nil, false, nil
		}
		x, keyKind, ok := parseIndexKey(k)
		if !ok {
			return nil, false, nil
		}
		if first {
			kind = keyKind
			first = false
		} else if keyKind != kind {
			return nil, false, fmt.Errorf("mixed index key kinds")
		}
		pairs = append(pairs, pair{x: x, y: y})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })
	index := make([]float64, len(pairs))
	values := make([]float64, len(pairs))
	for i, p := range pairs {
		index[i] = p.x
		values[i] = p.y
	}
	s, err := series.FromDomain(kind, index, values)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// parseIndexKey reads an index key as a number or an RFC 3339
// timestamp.
func parseIndexKey(k string) (float64, series.Kind, bool) {
	if f, err := strconv.ParseFloat(k, 64); err == nil {
		return f, series.KindNumber, true
	}
	if t, err := time.Parse(time.RFC3339, k); err == nil {
		return timeutil.ToDomain(t), series.KindTime, true
	}
	return 0, series.KindNumber, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	default:
		return 0, false
	}
}
