package model

const DefaultTimeLayout = "2006-01-02T15:04:05-0700"

type Giveaway struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
	ChannelID   string `json:"channel_id"`
	MessageID   string `json:"message_id,omitempty"`
	HostID      string `json:"host_id"`
	Prize       string `json:"prize"`
	WinnerCount int    `json:"winner_count"`
	EndsAt      string `json:"ends_at"`
	Ended       bool   `json:"ended"`
	Entries     int64  `json:"entries,omitempty"`
}

const (
	OutcomeWinners      = "winners"
	OutcomeNoEntries    = "no_entries"
	OutcomeAlreadyEnded = "already_ended"
)

// GiveawayOutcome is the result of resolving a giveaway. The presentation
// layer renders and delivers it; this service never formats display text.
type GiveawayOutcome struct {
	GiveawayID string   `json:"giveaway_id"`
	Outcome    string   `json:"outcome"`
	Winners    []string `json:"winners,omitempty"`
}

type CreateGiveawayRequest struct {
	CommunityID string `json:"community_id"`
	ChannelID   string `json:"channel_id"`
	Prize       string `json:"prize"`
	WinnerCount int    `json:"winner_count"`
	Duration    string `json:"duration"`
}

type CreateGiveawayResponse struct {
	Giveaway Giveaway `json:"giveaway"`
}

type AttachGiveawayMessageRequest struct {
	GiveawayID string `json:"giveaway_id"`
	ChannelID  string `json:"channel_id"`
	MessageID  string `json:"message_id"`
}

type AttachGiveawayMessageResponse struct{}

type EndGiveawayRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type EndGiveawayResponse struct {
	Outcome GiveawayOutcome `json:"outcome"`
}

type GetActiveGiveawaysRequest struct {
	CommunityID string `json:"community_id"`
}

type GetActiveGiveawaysResponse struct {
	Giveaways []Giveaway `json:"giveaways"`
}

type ToggleEntryRequest struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Removed   bool   `json:"removed"`
}

type ToggleEntryResponse struct{}
