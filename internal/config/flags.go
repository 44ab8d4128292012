package config

import (
	"flag"
	"os"
)

// parses CLI flags for the ingester
func ParseIngestFlags() Flags {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	path := fs.String("path", defaultDocsDir, "path to documentation directory")
	clearFlag := fs.Bool("clear", false, "clear existing chunks before ingesting")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}
