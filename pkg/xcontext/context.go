package xcontext

import (
	"context"

	"github.com/drawlab-gg/backend/config"
	"github.com/drawlab-gg/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
	requestUserIDKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("no logger in context")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if one is open in this context,
// otherwise the root database handle.
func DB(ctx context.Context) *gorm.DB {
	if state, ok := ctx.Value(dbTransactionKey{}).(*txState); ok && !state.done {
		return state.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type txState struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction and stores it in the returned
// context. All repository calls through DB() will use it until it is
// committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return context.WithValue(ctx, dbTransactionKey{}, &txState{tx: db.Begin()})
}

// WithCommitDBTransaction commits the transaction opened by
// WithDBTransaction. It is a no-op if the transaction already finished.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if state, ok := ctx.Value(dbTransactionKey{}).(*txState); ok && !state.done {
		state.tx.Commit()
		state.done = true
	}

	return ctx
}

// WithRollbackDBTransaction rolls back the transaction opened by
// WithDBTransaction. It is a no-op if the transaction already finished,
// so it is safe to defer right after beginning the transaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if state, ok := ctx.Value(dbTransactionKey{}).(*txState); ok && !state.done {
		state.tx.Rollback()
		state.done = true
	}

	return ctx
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	userID, ok := ctx.Value(requestUserIDKey{}).(string)
	if !ok {
		return ""
	}

	return userID
}
