package config

import (
	"flag"

	"github.com/jhowson/creditstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   accounts file path
//	-p string   products file path
//	-l string   log level ("debug", "info", "warn", "error")
//
// The args are first filtered to the flags handled here using
// flagx.FilterArgs, avoiding collisions with flags defined elsewhere.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-l"})

	fs := flag.NewFlagSet("store", flag.ContinueOnError)

	fs.StringVar(&config.AccountsFile, "a", config.AccountsFile, "accounts file path")
	fs.StringVar(&config.ProductsFile, "p", config.ProductsFile, "products file path")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	// A malformed flag (e.g. a trailing -a with no value) must not crash
	// startup; whatever parsed before the error is kept.
	_ = fs.Parse(args)
}
