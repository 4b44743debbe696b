// Package config holds the small CLI configuration for the cmd/dispute
// demo binary.
package config

import (
	"fmt"
	"os"
)

// Config selects which side of the protocol cmd/dispute plays and
// where it reads/writes its files.
type Config struct {
	// Role is "vendor" or "buyer".
	Role           string
	RootDir        string
	FilePath       string
	KeyHex         string
	CtPath         string
	DescriptionHex string
}

// NewConfig builds a Config from environment-variable defaults,
// overridden by CLI flags in args (conventionally os.Args).
func NewConfig(args ...string) *Config {
	config := Config{
		Role:           getEnv("DISPUTE_ROLE", "vendor"),
		RootDir:        getEnv("DISPUTE_ROOT", "."),
		FilePath:       getEnv("DISPUTE_FILE", "file.bin"),
		KeyHex:         getEnv("DISPUTE_KEY", ""),
		CtPath:         getEnv("DISPUTE_CT", "ct.bin"),
		DescriptionHex: getEnv("DISPUTE_DESCRIPTION", ""),
	}

	for i := 0; i < len(args); i++ {
		if len(args[i]) > 2 && args[i][:2] == "--" && len(args) <= i+1 {
			panic(fmt.Errorf("missing argument for %s", args[i]))
		}

		switch args[i] {
		case "--role":
			config.Role = args[i+1]
			i++
		case "--root":
			config.RootDir = args[i+1]
			i++
		case "--file":
			config.FilePath = args[i+1]
			i++
		case "--key":
			config.KeyHex = args[i+1]
			i++
		case "--ct":
			config.CtPath = args[i+1]
			i++
		case "--description":
			config.DescriptionHex = args[i+1]
			i++
		}
	}

	return &config
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
