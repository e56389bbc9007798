package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"libdb-finder/config"
	"libdb-finder/db"
	"libdb-finder/eventbus"
	"libdb-finder/fetcher"
	"libdb-finder/locator"
	"libdb-finder/repositories"
)

// NewFromConfig 는 설정에 있는 협력자들로 AnalysisService 를 조립한다.
// 검색 자격 증명, MongoDB, Kafka 는 모두 선택 사항이며 없거나 연결에 실패하면 해당 기능만 꺼진다.
// 반환된 cleanup 은 열린 연결을 닫는다.
func NewFromConfig(ctx context.Context, cfg config.AppConfig) (*AnalysisService, func()) {
	var closers []func()
	deps := Deps{
		Fetchers: func(mode fetcher.Mode) (fetcher.Fetcher, error) {
			return fetcher.New(cfg.Fetch, mode)
		},
		Topic: eventbus.AnalysisTopic(cfg.EventBus),
	}

	provider, err := locator.NewProvider(ctx, cfg, locator.APIKey(cfg.Search.Provider))
	if err != nil {
		if errors.Is(err, locator.ErrNoCredential) {
			config.Logger.Warnf("search disabled, manual URL entry only: %v", err)
		} else {
			config.Logger.Errorf("search provider: %v", err)
		}
		deps.LocatorErr = err
	} else {
		deps.Locator = locator.New(provider, cfg.Search, locator.NewQuotaLimiter(cfg.Search))
	}

	client, database, err := db.Connect(ctx, cfg.Mongo)
	switch {
	case err == nil:
		deps.Runs = repositories.NewAnalysisRunRepository(database)
		closers = append(closers, func() { disconnect(client) })
	case errors.Is(err, db.ErrNotConfigured):
		config.Logger.Debug("MONGO_URI not set, analysis run log disabled")
	default:
		config.Logger.Errorf("MongoDB unavailable, analysis run log disabled: %v", err)
	}

	if cfg.EventBus.Brokers != "" {
		if err := eventbus.EnsureTopic(cfg.EventBus.Brokers, deps.Topic, 1); err != nil {
			config.Logger.Warnf("eventbus: ensure topic %s: %v", deps.Topic.Base(), err)
		}
		bus, err := eventbus.NewKafkaEventBus(cfg.EventBus.Brokers)
		if err != nil {
			config.Logger.Errorf("eventbus disabled: %v", err)
		} else {
			deps.Bus = bus
			closers = append(closers, bus.Close)
		}
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return NewAnalysisService(cfg, deps), cleanup
}

func disconnect(client *mongo.Client) {
	if err := client.Disconnect(context.Background()); err != nil {
		config.Logger.Warnf("MongoDB disconnect: %v", err)
	}
}
