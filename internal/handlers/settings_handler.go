package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

type SettingsHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSettingsHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{db: db, audit: dispatcher}
}

type UpdateSettingsRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, shopSettings(h.db))
}

func (h *SettingsHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var settings models.ShopSettings
	if err := h.db.First(&settings).Error; err != nil {
		httperr.Internal(c, "settings_not_found", "Could not load shop settings.")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid settings data.")
		return
	}

	if req.Name != nil {
		settings.Name = *req.Name
	}
	if req.Phone != nil {
		settings.Phone = *req.Phone
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		settings.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive (minutes).")
			return
		}
		settings.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Could not save shop settings.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "settings_updated",
		Entity:   "shop_settings",
		EntityID: &settings.ID,
	})

	c.JSON(http.StatusOK, settings)
}
