package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/internal/model"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/drawlab-gg/backend/pkg/crypto"
	"github.com/drawlab-gg/backend/pkg/dateutil"
	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/pubsub"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"github.com/drawlab-gg/backend/pkg/xredis"
	"github.com/google/uuid"
	mathutil "github.com/pkg/math"
	"gorm.io/gorm"
)

type GiveawayDomain interface {
	Create(context.Context, *model.CreateGiveawayRequest) (*model.CreateGiveawayResponse, error)
	AttachMessage(context.Context, *model.AttachGiveawayMessageRequest) (*model.AttachGiveawayMessageResponse, error)
	EndEarly(context.Context, *model.EndGiveawayRequest) (*model.EndGiveawayResponse, error)
	GetActive(context.Context, *model.GetActiveGiveawaysRequest) (*model.GetActiveGiveawaysResponse, error)

	// Resolve performs the exactly-once active-to-ended transition. It is
	// shared by EndEarly and the sweep cron job.
	Resolve(ctx context.Context, giveaway *entity.Giveaway) (*model.GiveawayOutcome, error)
}

type giveawayDomain struct {
	giveawayRepo repository.GiveawayRepository
	publisher    pubsub.Publisher
	redisClient  xredis.Client
}

func NewGiveawayDomain(
	giveawayRepo repository.GiveawayRepository,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
) *giveawayDomain {
	return &giveawayDomain{
		giveawayRepo: giveawayRepo,
		publisher:    publisher,
		redisClient:  redisClient,
	}
}

func (d *giveawayDomain) Create(
	ctx context.Context, req *model.CreateGiveawayRequest,
) (*model.CreateGiveawayResponse, error) {
	if strings.TrimSpace(req.Prize) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a prize description")
	}

	if req.WinnerCount < 1 {
		return nil, errorx.New(errorx.BadRequest, "Number of winners must be at least 1")
	}

	duration, err := dateutil.ParseDuration(req.Duration)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid duration: %v", err)
	}

	giveaway := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: req.CommunityID,
		ChannelID:   req.ChannelID,
		HostID:      xcontext.RequestUserID(ctx),
		Prize:       req.Prize,
		WinnerCount: req.WinnerCount,
		EndsAt:      time.Now().Add(duration),
	}

	if err := d.giveawayRepo.Create(ctx, giveaway); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create giveaway: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateActiveCache(ctx, giveaway.CommunityID)

	return &model.CreateGiveawayResponse{Giveaway: model.ConvertGiveaway(giveaway, 0)}, nil
}

func (d *giveawayDomain) AttachMessage(
	ctx context.Context, req *model.AttachGiveawayMessageRequest,
) (*model.AttachGiveawayMessageResponse, error) {
	if req.ChannelID == "" || req.MessageID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require channel id and message id")
	}

	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.giveawayRepo.AttachMessage(ctx, req.GiveawayID, req.ChannelID, req.MessageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Giveaway already ended")
		}

		xcontext.Logger(ctx).Errorf("Cannot attach message to giveaway: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateActiveCache(ctx, giveaway.CommunityID)

	return &model.AttachGiveawayMessageResponse{}, nil
}

func (d *giveawayDomain) EndEarly(
	ctx context.Context, req *model.EndGiveawayRequest,
) (*model.EndGiveawayResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if giveaway.Ended {
		return nil, errorx.New(errorx.NotFound, "Giveaway already ended")
	}

	outcome, err := d.Resolve(ctx, giveaway)
	if err != nil {
		return nil, err
	}

	return &model.EndGiveawayResponse{Outcome: *outcome}, nil
}

func (d *giveawayDomain) GetActive(
	ctx context.Context, req *model.GetActiveGiveawaysRequest,
) (*model.GetActiveGiveawaysResponse, error) {
	if req.CommunityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a community id")
	}

	if d.redisClient != nil {
		var cached []model.Giveaway
		err := d.redisClient.GetObj(ctx, activeCacheKey(req.CommunityID), &cached)
		if err == nil {
			return &model.GetActiveGiveawaysResponse{Giveaways: cached}, nil
		}

		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot get cached active giveaways: %v", err)
		}
	}

	giveaways, err := d.giveawayRepo.GetActiveByCommunity(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active giveaways: %v", err)
		return nil, errorx.Unknown
	}

	clientGiveaways := []model.Giveaway{}
	for i := range giveaways {
		entries, err := d.giveawayRepo.CountEntries(ctx, giveaways[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count entries: %v", err)
			return nil, errorx.Unknown
		}

		clientGiveaways = append(clientGiveaways, model.ConvertGiveaway(&giveaways[i], entries))
	}

	if d.redisClient != nil {
		ttl := xcontext.Configs(ctx).Giveaway.ActiveListCacheTTL
		err := d.redisClient.SetObj(ctx, activeCacheKey(req.CommunityID), clientGiveaways, ttl)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache active giveaways: %v", err)
		}
	}

	return &model.GetActiveGiveawaysResponse{Giveaways: clientGiveaways}, nil
}

func (d *giveawayDomain) Resolve(
	ctx context.Context, giveaway *entity.Giveaway,
) (*model.GiveawayOutcome, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.giveawayRepo.CheckAndEnd(ctx, giveaway.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Another caller won the race between the sweep and an
			// explicit end request.
			return &model.GiveawayOutcome{
				GiveawayID: giveaway.ID,
				Outcome:    model.OutcomeAlreadyEnded,
			}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot end giveaway: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.giveawayRepo.GetEntries(ctx, giveaway.ID)
	if err != nil {
		// The rollback undoes the end mark, so the next sweep retries.
		xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
		return nil, errorx.Unknown
	}

	outcome := &model.GiveawayOutcome{GiveawayID: giveaway.ID}
	if len(entries) == 0 {
		outcome.Outcome = model.OutcomeNoEntries
	} else {
		outcome.Outcome = model.OutcomeWinners
		outcome.Winners = d.draw(entries, giveaway.WinnerCount)
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	d.invalidateActiveCache(ctx, giveaway.CommunityID)
	d.announce(ctx, outcome)

	return outcome, nil
}

// draw selects min(winnerCount, len(entries)) user ids by uniform sampling
// without replacement.
func (d *giveawayDomain) draw(entries []entity.GiveawayEntry, winnerCount int) []string {
	userIDs := make([]string, len(entries))
	for i := range entries {
		userIDs[i] = entries[i].UserID
	}

	k := mathutil.MinInt(winnerCount, len(userIDs))
	crypto.Shuffle(userIDs, k)

	return userIDs[:k]
}

// announce publishes the outcome for the presentation layer. Resolution is
// final once committed; a delivery failure is logged and never unwinds it.
func (d *giveawayDomain) announce(ctx context.Context, outcome *model.GiveawayOutcome) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(outcome)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal outcome of giveaway %s: %v", outcome.GiveawayID, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.AnnouncementTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(outcome.GiveawayID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish outcome of giveaway %s: %v", outcome.GiveawayID, err)
	}
}

func (d *giveawayDomain) invalidateActiveCache(ctx context.Context, communityID string) {
	if d.redisClient == nil {
		return
	}

	if err := d.redisClient.Del(ctx, activeCacheKey(communityID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate active giveaway cache: %v", err)
	}
}

func activeCacheKey(communityID string) string {
	return fmt.Sprintf("giveaways:active:%s", communityID)
}
