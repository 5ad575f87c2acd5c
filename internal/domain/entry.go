package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/internal/model"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/drawlab-gg/backend/pkg/errorx"
	"github.com/drawlab-gg/backend/pkg/pubsub"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// EntryEmoji is the reaction that toggles an entry. Reactions with any
// other emoji are ignored.
const EntryEmoji = "🎉"

// EntryDomain consumes entry toggle events. Events may arrive duplicated
// or out of order; both operations are idempotent and events referencing
// unknown or already ended giveaways are dropped silently. It never
// triggers resolution.
type EntryDomain interface {
	ToggleAdd(ctx context.Context, channelID, messageID, userID string) error
	ToggleRemove(ctx context.Context, channelID, messageID, userID string) error

	// Toggle is the HTTP surface of the same operations, for gateways
	// that deliver toggle events by request instead of the event topic.
	Toggle(ctx context.Context, req *model.ToggleEntryRequest) (*model.ToggleEntryResponse, error)

	// HandleReactionEvent is the pubsub.SubscribeHandler fed by the chat
	// gateway's reaction topic.
	HandleReactionEvent(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type entryDomain struct {
	giveawayRepo repository.GiveawayRepository
}

func NewEntryDomain(giveawayRepo repository.GiveawayRepository) *entryDomain {
	return &entryDomain{giveawayRepo: giveawayRepo}
}

func (d *entryDomain) ToggleAdd(ctx context.Context, channelID, messageID, userID string) error {
	giveaway, err := d.giveawayRepo.GetByMessage(ctx, channelID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The event is for an unrelated message.
			return nil
		}

		return err
	}

	if giveaway.Ended {
		return nil
	}

	return d.giveawayRepo.AddEntry(ctx, &entity.GiveawayEntry{
		GiveawayID: giveaway.ID,
		UserID:     userID,
	})
}

func (d *entryDomain) ToggleRemove(ctx context.Context, channelID, messageID, userID string) error {
	giveaway, err := d.giveawayRepo.GetByMessage(ctx, channelID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	if giveaway.Ended {
		return nil
	}

	return d.giveawayRepo.RemoveEntry(ctx, giveaway.ID, userID)
}

func (d *entryDomain) Toggle(
	ctx context.Context, req *model.ToggleEntryRequest,
) (*model.ToggleEntryResponse, error) {
	if req.ChannelID == "" || req.MessageID == "" || req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require channel id, message id, and user id")
	}

	var err error
	if req.Removed {
		err = d.ToggleRemove(ctx, req.ChannelID, req.MessageID, req.UserID)
	} else {
		err = d.ToggleAdd(ctx, req.ChannelID, req.MessageID, req.UserID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleEntryResponse{}, nil
}

func (d *entryDomain) HandleReactionEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.ReactionEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal reaction event: %v", err)
		return
	}

	var data model.ReactionEventData
	if err := mapstructure.Decode(event.Data, &data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode reaction event data: %v", err)
		return
	}

	if data.Emoji != EntryEmoji {
		return
	}

	var err error
	switch event.Type {
	case model.ReactionAddedEvent:
		err = d.ToggleAdd(ctx, data.ChannelID, data.MessageID, data.UserID)
	case model.ReactionRemovedEvent:
		err = d.ToggleRemove(ctx, data.ChannelID, data.MessageID, data.UserID)
	default:
		xcontext.Logger(ctx).Debugf("Unknown reaction event type %s", event.Type)
		return
	}

	if err != nil {
		// The gateway retries delivery; the toggle is idempotent.
		xcontext.Logger(ctx).Errorf("Cannot handle %s event: %v", event.Type, err)
	}
}
