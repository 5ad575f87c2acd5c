package main

import (
	"github.com/drawlab-gg/backend/internal/domain/cron"
	"github.com/drawlab-gg/backend/pkg/kafka"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadCronPublisher()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		s.ctx,
		cron.NewGiveawaySweepCronJob(s.giveawayRepo, s.giveawayDomain, cfg.Giveaway.SweepInterval),
	)

	return nil
}

func (s *srv) loadCronPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher("drawlab-cron", []string{cfg.Kafka.Addr})
}
