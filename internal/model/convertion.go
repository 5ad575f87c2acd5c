package model

import "github.com/drawlab-gg/backend/internal/entity"

func ConvertGiveaway(giveaway *entity.Giveaway, entries int64) Giveaway {
	if giveaway == nil {
		return Giveaway{}
	}

	return Giveaway{
		ID:          giveaway.ID,
		CommunityID: giveaway.CommunityID,
		ChannelID:   giveaway.ChannelID,
		MessageID:   giveaway.MessageID,
		HostID:      giveaway.HostID,
		Prize:       giveaway.Prize,
		WinnerCount: giveaway.WinnerCount,
		EndsAt:      giveaway.EndsAt.Format(DefaultTimeLayout),
		Ended:       giveaway.Ended,
		Entries:     entries,
	}
}
