package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/httpresp"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/models"
	ucbooking "github.com/sharpcut-app/booking-api/internal/usecase/booking"
)

// ScheduleHandler serves the barber-side views: the day agenda and the
// complete action.
type ScheduleHandler struct {
	db         *gorm.DB
	listDayUC  *ucbooking.ListBarberDay
	completeUC *ucbooking.Complete
}

func NewScheduleHandler(
	db *gorm.DB,
	listDayUC *ucbooking.ListBarberDay,
	completeUC *ucbooking.Complete,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:         db,
		listDayUC:  listDayUC,
		completeUC: completeUC,
	}
}

// barberForUser resolves the barber profile behind the authenticated
// account.
func (h *ScheduleHandler) barberForUser(c *gin.Context) (*models.Barber, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Barber
	if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "No barber profile for this account.")
		return nil, false
	}

	return &barber, true
}

func (h *ScheduleHandler) Day(c *gin.Context) {
	barber, ok := h.barberForUser(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "A date is required.")
		return
	}

	settings := shopSettings(h.db)

	date, err := parseDateInShop(settings, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	items, err := h.listDayUC.Execute(c.Request.Context(), barber.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_schedule", "Could not load the schedule.")
		return
	}

	httpresp.List(c, items)
}

func (h *ScheduleHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), uint(id), userID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
