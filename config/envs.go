package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingEnv = errors.New("environment variable is not set")
	ErrInvalidEnv = errors.New("environment variable is invalid")
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string        // Host IP for the server
	RESTPort         int           // Port for the REST API
	GinMode          string        // Mode for the Gin framework (e.g., release, debug, test)
	RedisAddr        string        // Redis address; empty disables event publishing and the run lock
	RedisPassword    string        // Password for Redis
	RedisDB          int           // Redis database number
	RedisChannel     string        // Pub/sub channel carve events are published on
	LockKey          string        // Redis key guarding the single active generation
	LockExpiry       time.Duration // Lifetime of the run lock between refreshes
	HistoryKey       string        // Redis sorted set holding finished runs
	HistoryTTL       time.Duration // How long run history survives after the last run
	StepDelay        time.Duration // Pause after every carve step
	MaxMazeDimension int           // Largest accepted maze width or height
}

// Load reads the configuration from the environment.
// It loads environment variables from a .env file first, if one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	hostIP, err := mustGetEnv("HOST_IP")
	if err != nil {
		return Config{}, err
	}
	restPort, err := mustGetEnvAsInt("REST_PORT")
	if err != nil {
		return Config{}, err
	}
	redisDB, err := getEnvAsIntWithDefault("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	stepDelay, err := getEnvAsDurationWithDefault("STEP_DELAY", 50*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	lockExpiry, err := getEnvAsDurationWithDefault("LOCK_EXPIRY", 8*time.Second)
	if err != nil {
		return Config{}, err
	}
	if lockExpiry < time.Second {
		return Config{}, fmt.Errorf("%w: LOCK_EXPIRY must be at least 1s, got %s", ErrInvalidEnv, lockExpiry)
	}
	historyTTL, err := getEnvAsDurationWithDefault("HISTORY_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	maxDimension, err := getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 64)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HostIP:           hostIP,
		RESTPort:         restPort,
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:    getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:          redisDB,
		RedisChannel:     getEnvWithDefault("REDIS_CHANNEL", "mazegen:events"),
		LockKey:          getEnvWithDefault("LOCK_KEY", "mazegen:active_run"),
		LockExpiry:       lockExpiry,
		HistoryKey:       getEnvWithDefault("HISTORY_KEY", "mazegen:history"),
		HistoryTTL:       historyTTL,
		StepDelay:        stepDelay,
		MaxMazeDimension: maxDimension,
	}, nil
}

// mustGetEnv retrieves the value of an environment variable or fails if it is not set.
func mustGetEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return value, nil
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer.
func mustGetEnvAsInt(key string) (int, error) {
	valueStr, err := mustGetEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidEnv, key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	if _, exists := os.LookupEnv(key); !exists {
		return defaultValue, nil
	}
	return mustGetEnvAsInt(key)
}

func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a duration: %v", ErrInvalidEnv, key, err)
	}
	return value, nil
}
