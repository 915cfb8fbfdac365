package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shop-agent/internal/auth"
	"shop-agent/internal/catalog"
	"shop-agent/internal/config"
	"shop-agent/internal/handlers"
	"shop-agent/internal/logger"
	"shop-agent/internal/ratelimit"
	"shop-agent/internal/repository/postgres"
	"shop-agent/internal/service/agent"
	"shop-agent/internal/service/chatlog"
	"shop-agent/internal/service/llm"
	"shop-agent/internal/service/tools"
)

func main() {
	// .env is optional, containerized deployments inject the environment
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	database, err := postgres.NewPostgresDB(cfg.Database)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	limiter, err := newLimiter(cfg.RateLimit, database)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize rate limiter")
	}
	defer limiter.Close()

	productCatalog, err := catalog.NewSupabaseCatalog(cfg.Supabase)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize catalog client")
	}

	gateway := llm.NewOpenRouterGateway(&cfg.LLM)
	executor := tools.NewExecutor(productCatalog)
	conversationLog := chatlog.NewService(database)
	agentService := agent.NewService(gateway, executor, conversationLog)
	authService := auth.NewService(database, cfg.Auth)

	router := handlers.NewRouter(authService, agentService, limiter, database)

	logger.Log.WithFields(logrus.Fields{
		"port":              cfg.Server.Port,
		"model":             cfg.LLM.Model,
		"rate_limit_driver": cfg.RateLimit.Driver,
	}).Info("Server starting")

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Log.WithError(err).Fatal("Server failed")
	}
}

// newLimiter builds the admission store for the configured driver, sharing
// the application database connection when postgres is selected
func newLimiter(cfg config.RateLimitConfig, database *postgres.PostgresDB) (ratelimit.Store, error) {
	policy := ratelimit.Policy{
		Window:      time.Duration(cfg.WindowSeconds) * time.Second,
		MaxRequests: cfg.MaxRequests,
	}

	switch ratelimit.Driver(cfg.Driver) {
	case ratelimit.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return ratelimit.New(ratelimit.DriverRedis, policy, ratelimit.WithRedisClient(client))
	case ratelimit.DriverPostgres:
		return ratelimit.New(ratelimit.DriverPostgres, policy, ratelimit.WithDB(database.GetDB()))
	default:
		return ratelimit.New(ratelimit.Driver(cfg.Driver), policy)
	}
}
