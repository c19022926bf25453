package handlers

import (
	"time"

	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

// shopSettings loads the single settings row; the zero value keeps handlers
// working against an empty database.
func shopSettings(db *gorm.DB) *models.ShopSettings {
	var settings models.ShopSettings
	if err := db.First(&settings).Error; err != nil {
		return &models.ShopSettings{Timezone: timezone.DefaultTimezone}
	}
	return &settings
}

func parseDateInShop(settings *models.ShopSettings, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(settings.Timezone),
	)
}
