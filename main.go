package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/api"
	api_i "github.com/beka-birhanu/vinom-mazegen/api/i"
	mazeapi "github.com/beka-birhanu/vinom-mazegen/api/maze"
	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/history"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/lock"
	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/pubsub"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	envs              config.Config
	redisClient       *redis.Client
	publishers        []i.EventPublisher
	runLocker         i.RunLocker
	runHistory        i.RunHistory
	generationService *service.GenerationService
	mazeController    api_i.Controller
	router            *api.Router
	appLogger         *logger.Logger
)

func initConfig() {
	var err error
	envs, err = config.Load()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading configuration: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Configuration loaded")
}

func initRedis(ctx context.Context) {
	if envs.RedisAddr == "" {
		appLogger.Warn("REDIS_ADDR is not set, events stay in-process and runs are not locked")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
		DB:       envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initPublisher() {
	if redisClient == nil {
		return
	}

	publisher, err := pubsub.NewRedisPublisher(redisClient, envs.RedisChannel)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis publisher: %v", err))
		os.Exit(1)
	}
	publishers = append(publishers, publisher)
	appLogger.Info(fmt.Sprintf("Publishing carve events on %q", publisher.Channel()))
}

func initRunLocker() {
	if redisClient == nil {
		return
	}

	var err error
	runLocker, err = lock.NewRedisRunLock(redisClient, envs.LockKey, envs.LockExpiry)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run lock: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run lock initialized")
}

func initRunHistory() {
	if redisClient == nil {
		return
	}

	var err error
	runHistory, err = history.NewRedisRunHistory(redisClient, envs.HistoryKey, envs.HistoryTTL, 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run history: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run history initialized")
}

func initGenerationService() {
	generationLogger, err := logger.New("GENERATOR", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generation service logger: %v", err))
		os.Exit(1)
	}

	generationService, err = service.NewGenerationService(service.Config{
		Carver:              maze.NewCarver(),
		Publishers:          publishers,
		Locker:              runLocker,
		History:             runHistory,
		Logger:              generationLogger,
		StepDelay:           envs.StepDelay,
		MaxDimension:        envs.MaxMazeDimension,
		LockRefreshInterval: envs.LockExpiry / 4, // several refreshes per expiry, whatever the step delay
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generation service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generation service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(generationService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:     "/api",
		GinMode:     envs.GinMode,
		Controllers: []api_i.Controller{mazeController},
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initConfig()
	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initPublisher()
	initRunLocker()
	initRunHistory()
	initGenerationService()
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
