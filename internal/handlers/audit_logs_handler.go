package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/httpresp"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	dateStr := c.Query("date")
	limitStr := c.Query("limit")

	limit := 100
	if limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	q := h.db.Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if dateStr != "" {
		settings := shopSettings(h.db)

		date, err := parseDateInShop(settings, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}

		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, timezone.Location(settings.Timezone))
		q = q.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
