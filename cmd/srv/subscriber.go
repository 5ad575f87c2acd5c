package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drawlab-gg/backend/pkg/kafka"
	"github.com/drawlab-gg/backend/pkg/pubsub"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	// The consumer session context has no database or logger; handle
	// events with the service context instead.
	handler := func(_ context.Context, pack *pubsub.Pack, t time.Time) {
		s.entryDomain.HandleReactionEvent(s.ctx, pack, t)
	}

	subscriber := kafka.NewSubscriber(
		cfg.Kafka.ConsumerGroup,
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Kafka.ReactionTopic},
		handler,
	)

	subscriber.Subscribe(s.ctx)
	xcontext.Logger(s.ctx).Infof("Subscriber started on topic %s", cfg.Kafka.ReactionTopic)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	return subscriber.Stop(s.ctx)
}
