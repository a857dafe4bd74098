package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables providing default values to the flags.
const (
	EnvFile     = "CGT_ENV_FILE"
	EnvSelect   = "CGT_SELECT"
	EnvWorkers  = "CGT_WORKERS"
	EnvCurrency = "CGT_CURRENCY"
	EnvVerbose  = "CGT_VERBOSE"
)

// LoadEnv loads environment variables from the file named by $CGT_ENV_FILE, or
// from ".env" in the working directory. A missing ".env" is not an error.
// Variables already set in the environment are not overridden.
func LoadEnv() error {
	if file := os.Getenv(EnvFile); file != "" {
		return godotenv.Load(file)
	}
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// envString returns the value of the environment variable key, or def.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// envInt returns the integer value of the environment variable key, or def.
func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning, ignoring $%s=%q: not an integer", key, v)
		return def
	}
	return i
}

// envBool returns the boolean value of the environment variable key, or def.
func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("warning, ignoring $%s=%q: not a boolean", key, v)
		return def
	}
	return b
}
