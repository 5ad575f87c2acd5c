package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Giveaway  GiveawayConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string

	// AnnouncementTopic receives resolution outcomes for the presentation
	// layer to render and deliver.
	AnnouncementTopic string

	// ReactionTopic delivers entry toggle events from the chat gateway.
	ReactionTopic string

	ConsumerGroup string
}

type GiveawayConfigs struct {
	// SweepInterval is the period of the expired-giveaway sweep.
	SweepInterval time.Duration

	// ActiveListCacheTTL bounds staleness of the cached active-giveaway
	// listing per community.
	ActiveListCacheTTL time.Duration
}
