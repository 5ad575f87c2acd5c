package repository

import (
	"context"
	"time"

	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *entity.Giveaway) error
	GetByID(ctx context.Context, id string) (*entity.Giveaway, error)
	GetByMessage(ctx context.Context, channelID, messageID string) (*entity.Giveaway, error)
	GetUnresolvedExpired(ctx context.Context, now time.Time) ([]entity.Giveaway, error)
	GetActiveByCommunity(ctx context.Context, communityID string) ([]entity.Giveaway, error)
	CheckAndEnd(ctx context.Context, id string) error
	AttachMessage(ctx context.Context, id, channelID, messageID string) error

	AddEntry(ctx context.Context, entry *entity.GiveawayEntry) error
	RemoveEntry(ctx context.Context, giveawayID, userID string) error
	GetEntries(ctx context.Context, giveawayID string) ([]entity.GiveawayEntry, error)
	CountEntries(ctx context.Context, giveawayID string) (int64, error)
}

type giveawayRepository struct{}

func NewGiveawayRepository() *giveawayRepository {
	return &giveawayRepository{}
}

func (r *giveawayRepository) Create(ctx context.Context, giveaway *entity.Giveaway) error {
	return xcontext.DB(ctx).Create(giveaway).Error
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*entity.Giveaway, error) {
	var result entity.Giveaway
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetByMessage(
	ctx context.Context, channelID, messageID string,
) (*entity.Giveaway, error) {
	var result entity.Giveaway
	err := xcontext.DB(ctx).
		Take(&result, "channel_id=? AND message_id=? AND message_id != ''", channelID, messageID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetUnresolvedExpired(
	ctx context.Context, now time.Time,
) ([]entity.Giveaway, error) {
	var result []entity.Giveaway
	err := xcontext.DB(ctx).
		Find(&result, "ended=? AND ends_at <= ?", false, now).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) GetActiveByCommunity(
	ctx context.Context, communityID string,
) ([]entity.Giveaway, error) {
	var result []entity.Giveaway
	err := xcontext.DB(ctx).Where("community_id=? AND ended=?", communityID, false).
		Order("ends_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CheckAndEnd marks the giveaway as ended only if it is not ended yet. It
// returns gorm.ErrRecordNotFound if another caller already ended it. The
// conditional write is what serializes the sweep against an explicit
// end-early request; do not replace it with a read-then-write pair.
func (r *giveawayRepository) CheckAndEnd(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Giveaway{}).
		Where("id=? AND ended=?", id, false).
		Update("ended", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// AttachMessage binds the announcement coordinates to a giveaway that has
// not ended yet.
func (r *giveawayRepository) AttachMessage(ctx context.Context, id, channelID, messageID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Giveaway{}).
		Where("id=? AND ended=?", id, false).
		Updates(map[string]any{"channel_id": channelID, "message_id": messageID})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *giveawayRepository) AddEntry(ctx context.Context, entry *entity.GiveawayEntry) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "giveaway_id"},
				{Name: "user_id"},
			},
			DoNothing: true,
		}).Create(entry).Error
}

func (r *giveawayRepository) RemoveEntry(ctx context.Context, giveawayID, userID string) error {
	return xcontext.DB(ctx).
		Where("giveaway_id=? AND user_id=?", giveawayID, userID).
		Delete(&entity.GiveawayEntry{}).Error
}

func (r *giveawayRepository) GetEntries(
	ctx context.Context, giveawayID string,
) ([]entity.GiveawayEntry, error) {
	var result []entity.GiveawayEntry
	if err := xcontext.DB(ctx).Find(&result, "giveaway_id=?", giveawayID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) CountEntries(ctx context.Context, giveawayID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GiveawayEntry{}).
		Where("giveaway_id=?", giveawayID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
