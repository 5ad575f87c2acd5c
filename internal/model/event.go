package model

// ReactionEvent is the envelope published by the chat gateway for
// reaction add/remove events. Data is decoded with mapstructure depending
// on Type.
type ReactionEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

const (
	ReactionAddedEvent   = "reaction_added"
	ReactionRemovedEvent = "reaction_removed"
)

type ReactionEventData struct {
	ChannelID string `mapstructure:"channel_id"`
	MessageID string `mapstructure:"message_id"`
	UserID    string `mapstructure:"user_id"`
	Emoji     string `mapstructure:"emoji"`
}
