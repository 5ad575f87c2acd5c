package entity

import "time"

// Giveaway is one timed multi-winner drawing. It is bound to the chat
// message announcing it (ChannelID, MessageID); entry toggle events are
// matched against those coordinates. Ended flips false to true exactly
// once and never reverts. Rows are kept after ending for listing history.
type Giveaway struct {
	Base

	CommunityID string `gorm:"index:idx_giveaways_community_active"`
	ChannelID   string `gorm:"index:idx_giveaways_message,priority:1"`

	// MessageID is empty between creation and the announcement attach
	// call. A giveaway in that window cannot receive entries.
	MessageID string `gorm:"index:idx_giveaways_message,priority:2"`

	HostID      string
	Prize       string
	WinnerCount int
	EndsAt      time.Time
	Ended       bool `gorm:"index:idx_giveaways_community_active"`
}

// GiveawayEntry records one participant's intent to enter a giveaway. The
// composite primary key makes repeated toggle-adds collapse into a single
// row.
type GiveawayEntry struct {
	GiveawayID string   `gorm:"primaryKey"`
	Giveaway   Giveaway `gorm:"foreignKey:GiveawayID"`

	UserID string `gorm:"primaryKey"`

	CreatedAt time.Time
}
