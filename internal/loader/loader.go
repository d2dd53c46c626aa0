// Package loader reads series files into loadable items. It accepts
// JSON in several shapes (plain arrays, index→value objects,
// name→series objects, and full records with metadata), CSV with an
// index column, and gzip-wrapped versions of both.
package loader

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/serieslab/inspector/internal/series"
)

// Loaded is one series extracted from a file, ready for the session.
type Loaded struct {
	Series   *series.Series
	Name     string
	Metadata map[string]string
}

// LoadFile reads a series file, dispatching on extension. A .gz
// suffix is unwrapped first, so data.json.gz and data.csv.gz work.
func LoadFile(path string) ([]Loaded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	switch ext := filepath.Ext(name); ext {
	case ".json":
		return LoadJSON(r, base)
	case ".csv":
		return LoadCSV(r, base)
	default:
		return nil, fmt.Errorf("unsupported file type %q for %s", ext, path)
	}
}
