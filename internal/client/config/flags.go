package config

import (
	"flag"
	"os"
	"time"

	"paprikasync/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the service
//	-d string   path of the local sqlite database
//	-t int      request timeout in seconds
//	-v          verbose (debug) logging
//
// os.Args is filtered through flagx.FilterArgs so the config-file flag
// handled elsewhere does not trip the parse.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the service")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
