package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/backupsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   endpoint URL of the object store
//	-r string   region
//	-b string   bucket name
//	-u string   access key id
//	-p string   key prefix for backup records
//	-t int      per-operation timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components
// (notably the CLI subcommand arguments).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-r", "-b", "-u", "-p", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "endpoint URL of the object store")
	fs.StringVar(&cfg.S3Region, "r", cfg.S3Region, "region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "bucket name")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "access key id")
	fs.StringVar(&cfg.KeyPrefix, "p", cfg.KeyPrefix, "key prefix for backup records")
	callTimeout := fs.Int("t", int(cfg.CallTimeout.Seconds()), "per-operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CallTimeout = time.Duration(*callTimeout) * time.Second
}
