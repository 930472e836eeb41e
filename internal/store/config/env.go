package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the environment. A .env file in the
// working directory is loaded first when present; explicit environment
// variables win over .env values, which godotenv guarantees by never
// overriding variables that are already set.
//
// Recognized variables:
//
//	STORE_ACCOUNTS_FILE   path of the accounts file
//	STORE_PRODUCTS_FILE   path of the products file
//	STORE_LOG_LEVEL       minimum log level
func parseEnv(config *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("STORE_ACCOUNTS_FILE"); ok {
		config.AccountsFile = v
	}
	if v, ok := os.LookupEnv("STORE_PRODUCTS_FILE"); ok {
		config.ProductsFile = v
	}
	if v, ok := os.LookupEnv("STORE_LOG_LEVEL"); ok {
		config.LogLevel = v
	}
}
