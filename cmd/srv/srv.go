package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/drawlab-gg/backend/config"
	"github.com/drawlab-gg/backend/internal/domain"
	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/drawlab-gg/backend/pkg/logger"
	"github.com/drawlab-gg/backend/pkg/pubsub"
	"github.com/drawlab-gg/backend/pkg/router"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"github.com/drawlab-gg/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	giveawayRepo repository.GiveawayRepository

	giveawayDomain domain.GiveawayDomain
	entryDomain    domain.EntryDomain

	publisher   pubsub.Publisher
	redisClient xredis.Client

	router *router.Router
	server *http.Server
}

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "drawlab"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `The main service included all giveaway apis.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Category:    "Worker",
			Description: `The worker that sweeps expired giveaways and resolves them.`,
		},
		{
			Action:      server.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start the subscriber service",
			Category:    "Worker",
			Description: `The worker that consumes reaction events from the chat gateway.`,
		},
	}

	s.app = app
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "drawlab"),
			Password: getEnv("MYSQL_PASSWORD", "drawlab"),
			Database: getEnv("MYSQL_DATABASE", "drawlab"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:              getEnv("KAFKA_ADDR", "localhost:9092"),
			AnnouncementTopic: getEnv("KAFKA_ANNOUNCEMENT_TOPIC", "giveaway-announcements"),
			ReactionTopic:     getEnv("KAFKA_REACTION_TOPIC", "chat-reactions"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "drawlab-backend"),
		},
		Giveaway: config.GiveawayConfigs{
			SweepInterval:      getEnvDuration("GIVEAWAY_SWEEP_INTERVAL", 30*time.Second),
			ActiveListCacheTTL: getEnvDuration("GIVEAWAY_ACTIVE_CACHE_TTL", time.Minute),
		},
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger())
}

func (s *srv) newDatabase() *gorm.DB {
	databaseCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(databaseCfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.giveawayRepo = repository.NewGiveawayRepository()
}

func (s *srv) loadDomains() {
	s.giveawayDomain = domain.NewGiveawayDomain(s.giveawayRepo, s.publisher, s.redisClient)
	s.entryDomain = domain.NewEntryDomain(s.giveawayRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
