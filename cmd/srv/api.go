package main

import (
	"net/http"

	"github.com/drawlab-gg/backend/internal/middleware"
	"github.com/drawlab-gg/backend/pkg/kafka"
	"github.com/drawlab-gg/backend/pkg/router"
	"github.com/drawlab-gg/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", cfg.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher("drawlab-api", []string{cfg.Kafka.Addr})
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	s.router.AddCloser(middleware.Logger())

	// Public API.
	router.GET(s.router, "/getActiveGiveaways", s.giveawayDomain.GetActive)
	router.POST(s.router, "/toggleEntry", s.entryDomain.Toggle)

	// These following APIs need a caller identity resolved by the chat
	// gateway.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		router.POST(authRouter, "/createGiveaway", s.giveawayDomain.Create)
		router.POST(authRouter, "/attachGiveawayMessage", s.giveawayDomain.AttachMessage)
		router.POST(authRouter, "/endGiveaway", s.giveawayDomain.EndEarly)
	}
}
