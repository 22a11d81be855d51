package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"trip-planner/internal/api"
	"trip-planner/internal/config"
	"trip-planner/internal/handlers"
	"trip-planner/internal/kafka"
	"trip-planner/internal/metrics"
	"trip-planner/internal/repositories"
	"trip-planner/internal/services"
)

type HandlersBundle struct {
	ExchangeHandler  *handlers.ExchangeHandler
	ItineraryHandler *handlers.ItineraryHandler
	AdminHandler     *handlers.AdminHandler
}

type RepositoriesBundle struct {
	RequestLogRepo *repositories.RequestLogRepository
	ItineraryRepo  *repositories.ItineraryRepository
	SnapshotRepo   *repositories.SnapshotRepository
	UserRegistry   *repositories.UserRegistry
}

type BootstrapBundle struct {
	Handlers     *HandlersBundle
	Repositories *RepositoriesBundle
	Currency     *services.CurrencyService
}

func InitBootstrap(
	cfg *config.Config,
	db *sql.DB,
	redisClient *redis.Client,
	kafkaBundle *kafka.KafkaBundle,
	m *metrics.Metrics,
	logger *slog.Logger,
) *BootstrapBundle {
	repos := &RepositoriesBundle{
		RequestLogRepo: repositories.NewRequestLogRepository(db, logger),
		ItineraryRepo:  repositories.NewItineraryRepository(db),
		SnapshotRepo:   repositories.NewSnapshotRepository(redisClient, logger),
		UserRegistry:   repositories.NewUserRegistry(redisClient),
	}

	currency := services.NewCurrencyService(
		api.NewRateTableClient(cfg.Exchange.APIURL, cfg.Exchange.HTTPTimeout),
		services.WithRateTTL(cfg.Exchange.CacheTTL),
		services.WithRatePublisher(kafkaBundle.ExchangeProducer),
		services.WithCurrencyMetrics(m),
		services.WithCurrencyLogger(logger),
	)

	chat := api.NewChatClient(cfg.LLM.APIURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.HTTPTimeout)
	if !chat.Configured() {
		logger.Warn("LLM_API_KEY is not set; itinerary generation will fail")
	}
	generator := services.NewItineraryGenerator(chat,
		services.WithMaxTokens(cfg.LLM.MaxTokens),
		services.WithTemperature(cfg.LLM.Temperature),
		services.WithItineraryMetrics(m),
		services.WithItineraryLogger(logger),
	)

	requestLog := services.NewRequestLogService(repos.RequestLogRepo, logger)

	return &BootstrapBundle{
		Handlers: &HandlersBundle{
			ExchangeHandler:  handlers.NewExchangeHandler(currency, requestLog, repos.SnapshotRepo, logger),
			ItineraryHandler: handlers.NewItineraryHandler(generator, repos.ItineraryRepo, kafkaBundle.ItineraryProducer, logger),
			AdminHandler:     handlers.NewAdminHandler(requestLog, logger),
		},
		Repositories: repos,
		Currency:     currency,
	}
}
