package repository_test

import (
	"testing"
	"time"

	"github.com/drawlab-gg/backend/internal/entity"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/drawlab-gg/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_giveawayRepository_CheckAndEnd(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	// The first caller performs the transition.
	require.NoError(t, repo.CheckAndEnd(ctx, giveaway.ID))

	// Every later caller observes the record-not-found sentinel.
	for i := 0; i < 5; i++ {
		err := repo.CheckAndEnd(ctx, giveaway.ID)
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}

	got, err := repo.GetByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.True(t, got.Ended)
}

func Test_giveawayRepository_CheckAndEnd_unknownID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	err := repo.CheckAndEnd(ctx, uuid.NewString())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_AddEntry_idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	entry := &entity.GiveawayEntry{GiveawayID: giveaway.ID, UserID: "user1"}
	require.NoError(t, repo.AddEntry(ctx, entry))
	require.NoError(t, repo.AddEntry(ctx, entry))
	require.NoError(t, repo.AddEntry(ctx, entry))

	count, err := repo.CountEntries(ctx, giveaway.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func Test_giveawayRepository_RemoveEntry_idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	// Removing an absent entry is not an error.
	require.NoError(t, repo.RemoveEntry(ctx, giveaway.ID, "user1"))

	require.NoError(t, repo.AddEntry(ctx, &entity.GiveawayEntry{
		GiveawayID: giveaway.ID, UserID: "user1",
	}))
	require.NoError(t, repo.RemoveEntry(ctx, giveaway.ID, "user1"))
	require.NoError(t, repo.RemoveEntry(ctx, giveaway.ID, "user1"))

	count, err := repo.CountEntries(ctx, giveaway.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func Test_giveawayRepository_GetByMessage(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		ChannelID: "channel1",
		MessageID: "message1",
	})
	require.NoError(t, err)

	got, err := repo.GetByMessage(ctx, "channel1", "message1")
	require.NoError(t, err)
	require.Equal(t, giveaway.ID, got.ID)

	_, err = repo.GetByMessage(ctx, "channel1", "unknown-message")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_GetByMessage_unattached(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	// A crash between create and attach leaves an empty message id; such
	// rows must never match a toggle event.
	err := repo.Create(ctx, &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: "community1",
		ChannelID:   "channel1",
		HostID:      "host1",
		Prize:       "Discord Nitro",
		WinnerCount: 1,
		EndsAt:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = repo.GetByMessage(ctx, "channel1", "")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_AttachMessage(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	giveaway, err := testutil.SampleGiveaway(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.AttachMessage(ctx, giveaway.ID, "channel2", "message2"))

	got, err := repo.GetByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, "channel2", got.ChannelID)
	require.Equal(t, "message2", got.MessageID)

	// Attach fails after the giveaway ended.
	require.NoError(t, repo.CheckAndEnd(ctx, giveaway.ID))
	err = repo.AttachMessage(ctx, giveaway.ID, "channel3", "message3")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_giveawayRepository_GetUnresolvedExpired(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	now := time.Now()

	expired, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		EndsAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = testutil.SampleGiveaway(ctx, &entity.Giveaway{
		EndsAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	alreadyEnded, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		EndsAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, repo.CheckAndEnd(ctx, alreadyEnded.ID))

	got, err := repo.GetUnresolvedExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, expired.ID, got[0].ID)
}

func Test_giveawayRepository_GetActiveByCommunity(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewGiveawayRepository()

	now := time.Now()

	later, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		CommunityID: "community1",
		EndsAt:      now.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	sooner, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		CommunityID: "community1",
		EndsAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = testutil.SampleGiveaway(ctx, &entity.Giveaway{
		CommunityID: "community2",
		EndsAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)

	ended, err := testutil.SampleGiveaway(ctx, &entity.Giveaway{
		CommunityID: "community1",
		EndsAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, repo.CheckAndEnd(ctx, ended.ID))

	got, err := repo.GetActiveByCommunity(ctx, "community1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, sooner.ID, got[0].ID)
	require.Equal(t, later.ID, got[1].ID)
}
