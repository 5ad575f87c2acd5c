package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleGiveaway creates a new giveaway in database with many fields
// randomized. The sample can be overwritten by non-zero fields of init.
//
// This function returns the sample giveaway.
func SampleGiveaway(ctx context.Context, init *entity.Giveaway) (entity.Giveaway, error) {
	giveawayRepo := repository.NewGiveawayRepository()

	sample := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: uuid.NewString(),
		ChannelID:   uuid.NewString(),
		MessageID:   uuid.NewString(),
		HostID:      uuid.NewString(),
		Prize:       "Discord Nitro",
		WinnerCount: 1,
		EndsAt:      time.Now().Add(time.Hour),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := giveawayRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
