package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	ucbooking "github.com/sharpcut-app/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC       *ucbooking.Book
	cancelUC     *ucbooking.Cancel
	rescheduleUC *ucbooking.Reschedule
	listUC       *ucbooking.ListClientAppointments
}

func NewAppointmentHandler(
	bookUC *ucbooking.Book,
	cancelUC *ucbooking.Cancel,
	rescheduleUC *ucbooking.Reschedule,
	listUC *ucbooking.ListClientAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:       bookUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	ap, err := h.bookUC.Execute(
		c.Request.Context(),
		ucbooking.BookInput{
			ClientID:  clientID,
			BarberID:  req.BarberID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Notes:     req.Notes,
		},
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST (own bookings)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.listUC.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	requesterRole := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid reschedule data.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		ucbooking.RescheduleInput{
			AppointmentID: uint(id),
			RequesterID:   requesterID,
			RequesterRole: requesterRole,
			Date:          req.Date,
			Time:          req.Time,
		},
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	requesterRole := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		uint(id),
		requesterID,
		requesterRole,
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapBookingError translates business errors into the status codes the
// mobile client distinguishes: 400 means pick another slot after a refresh,
// 409 means someone else won the race (or the state already changed), 404
// and 403 are terminal.
func mapBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "booking_failed", "Could not process the booking.")
		return
	}

	switch code {
	case httperr.CodeBarberNotFound, httperr.CodeServiceNotFound, httperr.CodeAppointmentNotFound:
		httperr.NotFound(c, code, "The requested item was not found.")
	case httperr.CodeInvalidSlot:
		httperr.BadRequest(c, code, "This time is not bookable. Please refresh the slots.")
	case httperr.CodeTimeConflict:
		httperr.Conflict(c, code, "This time is no longer available, please choose another.")
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, "You may not modify this appointment.")
	case httperr.CodeAlreadyCancelled:
		httperr.Conflict(c, code, "This appointment is already cancelled.")
	case httperr.CodeInvalidState:
		httperr.Conflict(c, code, "This appointment can no longer be changed.")
	default:
		httperr.Internal(c, code, "Could not process the booking.")
	}
}
