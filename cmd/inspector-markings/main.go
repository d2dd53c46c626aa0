// Inspector markings CLI — query and export stored markings without
// opening the TUI.
//
// Usage:
//
//	inspector-markings <command> [flags]
//
// Commands:
//
//	list      List the metadata sets stored in the database
//	query     List stored markings for a metadata set
//	tags      List tagged intervals for a metadata set
//	version   Print version information
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/serieslab/inspector/internal/storage"
	"github.com/serieslab/inspector/pkg/jsonutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		cmdList()
	case "query":
		cmdQuery()
	case "tags":
		cmdTags()
	case "version":
		fmt.Printf("inspector-markings v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`inspector-markings — query the marking database

Usage:
  inspector-markings <command> [flags]

Commands:
  list       List the metadata sets stored in the database
  query      List stored markings for a metadata set
  tags       List tagged intervals for a metadata set
  version    Print version information

Run 'inspector-markings <command> --help' for details on each command.`)
}

// cmdList prints every metadata set stored in the database, so users
// can discover what to pass to --meta.
func cmdList() {
	fs := pflag.NewFlagSet("list", pflag.ExitOnError)
	dbPath := fs.String("db", "inspector.db", "Path to the marking database")
	fs.Parse(os.Args[2:])

	store := openStore(*dbPath)
	defer store.Close()

	sets, err := store.ListMetadata()
	if err != nil {
		log.Fatalf("Listing metadata failed: %v", err)
	}
	printJSON(sets)
}

// cmdQuery lists markings for one metadata set as JSON.
func cmdQuery() {
	fs := pflag.NewFlagSet("query", pflag.ExitOnError)
	dbPath := fs.String("db", "inspector.db", "Path to the marking database")
	meta := fs.String("meta", "", "Metadata as k=v pairs, comma separated (required)")
	start := fs.Float64("start", math.Inf(-1), "Lower bound of the queried range")
	end := fs.Float64("end", math.Inf(1), "Upper bound of the queried range")
	fs.Parse(os.Args[2:])

	metadata, err := parseMeta(*meta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*dbPath)
	defer store.Close()

	records, err := store.QueryMarkings(metadata, *start, *end)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	printJSON(records)
}

// cmdTags lists tagged intervals for one metadata set as JSON.
func cmdTags() {
	fs := pflag.NewFlagSet("tags", pflag.ExitOnError)
	dbPath := fs.String("db", "inspector.db", "Path to the marking database")
	meta := fs.String("meta", "", "Metadata as k=v pairs, comma separated (required)")
	fs.Parse(os.Args[2:])

	metadata, err := parseMeta(*meta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*dbPath)
	defer store.Close()

	tags, err := store.QueryIntervalTags(metadata)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	printJSON(tags)
}

func openStore(path string) storage.Store {
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		log.Fatalf("Failed to open database at %s: %v", path, err)
	}
	return store
}

// parseMeta reads "k1=v1,k2=v2" into a metadata map.
func parseMeta(s string) (map[string]string, error) {
	if s == "" {
		return nil, fmt.Errorf("--meta is required")
	}
	metadata := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad metadata pair %q, want k=v", pair)
		}
		metadata[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return metadata, nil
}

func printJSON(v interface{}) {
	fmt.Println(jsonutil.PrettyJSON(jsonutil.MustMarshal(v)))
}
