package models

import (
	"time"

	"gorm.io/gorm"
)

// PlatformSettings is a single-row table read by checkout and the webhook
// handler. PlatformFeeBps is the marketplace cut in basis points (1000 = 10%).
type PlatformSettings struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PlatformFeeBps   int64     `gorm:"default:1000" json:"platform_fee_bps"`
	WaitlistOpen     bool      `gorm:"default:true" json:"waitlist_open"`
	MaintenanceMode  bool      `json:"maintenance_mode"`
	AnnouncementText string    `json:"announcement_text"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GetPlatformSettings loads the settings row, creating the default one on
// first use.
func GetPlatformSettings(db *gorm.DB) (*PlatformSettings, error) {
	var settings PlatformSettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = PlatformSettings{PlatformFeeBps: 1000, WaitlistOpen: true}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

type Vertical struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Slug  string `gorm:"unique;not null" json:"slug"`
	Label string `gorm:"not null" json:"label"`
	Emoji string `json:"emoji"`
}
