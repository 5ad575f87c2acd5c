package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drawlab-gg/backend/config"
	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/pkg/logger"
	"github.com/drawlab-gg/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	// A named in-memory database with shared cache keeps the schema
	// visible across pooled connections and transactions.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8080",
		},
		Giveaway: config.GiveawayConfigs{
			SweepInterval:      30 * time.Second,
			ActiveListCacheTTL: time.Minute,
		},
		Kafka: config.KafkaConfigs{
			AnnouncementTopic: "giveaway-announcements",
			ReactionTopic:     "chat-reactions",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLoggerWithLevel(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
