package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"os"
	"strconv"
)

// Defaults for maze_tool, taken from the environment or a .env file. Command
// line flags override these.
type config struct {
	// The directory holding maze and path files.
	Dir string
	// A logrus level name.
	LogLevel string
	// The random seed; not positive means seed from the clock.
	Seed int64
}

// Loads a .env file from the working directory if there is one, then reads
// MAZE_DIR, MAZE_LOG_LEVEL and MAZE_SEED.
func loadConfig() config {
	if e := godotenv.Load(); e != nil {
		log.Debugf(".env file not found or could not be loaded: %s", e)
	}
	return config{
		Dir:      getEnvWithDefault("MAZE_DIR", "."),
		LogLevel: getEnvWithDefault("MAZE_LOG_LEVEL", "info"),
		Seed:     getEnvAsInt64WithDefault("MAZE_SEED", -1),
	}
}

// Returns the value of an environment variable, or defaultValue if it isn't
// set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Like getEnvWithDefault, but parses the value as an integer. A value that
// doesn't parse is logged and replaced with defaultValue.
func getEnvAsInt64WithDefault(key string, defaultValue int64) int64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, e := strconv.ParseInt(valueStr, 10, 64)
	if e != nil {
		log.Warnf("Environment variable %s must be an integer: %s", key, e)
		return defaultValue
	}
	return value
}
