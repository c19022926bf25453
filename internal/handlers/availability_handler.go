package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	ucbooking "github.com/sharpcut-app/booking-api/internal/usecase/booking"
)

type AvailabilityHandler struct {
	db *gorm.DB
	uc *ucbooking.GetAvailability
}

func NewAvailabilityHandler(db *gorm.DB, uc *ucbooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, uc: uc}
}

// Get returns the booking grid for ?barber_id&service_id&date. Slots come
// back in ascending start order, each with its availability flag.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberIDStr := c.Query("barber_id")
	serviceIDStr := c.Query("service_id")
	dateStr := c.Query("date")

	if barberIDStr == "" || serviceIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "barber_id, service_id and date are required.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	settings := shopSettings(h.db)

	date, err := parseDateInShop(settings, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:  uint(barberID),
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.NotFound(c, code, "Barber or service not found.")
			return
		}

		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": domain.ToSlotInfo(slots),
	})
}
