package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

// isClockTime accepts zero-padded "HH:mm" only; the availability math
// parses these strings without a second chance to reject them.
func isClockTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validateWorkingDay(d WorkingDayConfig) error {
	if !d.Active {
		return nil
	}

	if !isClockTime(d.StartTime) || !isClockTime(d.EndTime) {
		return fmt.Errorf("weekday %d: start_time and end_time must be HH:mm", d.Weekday)
	}
	if d.StartTime >= d.EndTime {
		return fmt.Errorf("weekday %d: end_time must be after start_time", d.Weekday)
	}

	hasLunch := d.LunchStart != "" || d.LunchEnd != ""
	if !hasLunch {
		return nil
	}

	if !isClockTime(d.LunchStart) || !isClockTime(d.LunchEnd) {
		return fmt.Errorf("weekday %d: lunch times must both be HH:mm", d.Weekday)
	}
	if d.LunchStart >= d.LunchEnd {
		return fmt.Errorf("weekday %d: lunch_end must be after lunch_start", d.Weekday)
	}
	if d.LunchStart < d.StartTime || d.LunchEnd > d.EndTime {
		return fmt.Errorf("weekday %d: lunch must sit inside the working window", d.Weekday)
	}

	return nil
}

func (h *WorkingHoursHandler) barberID(c *gin.Context) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Barber
	if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "No barber profile for this account.")
		return 0, false
	}

	return barber.ID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := h.barberID(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole weekly template in one shot; the client always
// submits all seven days.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := h.barberID(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if err := validateWorkingDay(d); err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				BarberID:   barberID,
				Weekday:    d.Weekday,
				Active:     d.Active,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				LunchStart: d.LunchStart,
				LunchEnd:   d.LunchEnd,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
