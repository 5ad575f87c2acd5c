package entity

import (
	"context"
	"time"

	"github.com/drawlab-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Giveaway{},
		&GiveawayEntry{},
	)
}
