package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: dispatcher}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

// Create accepts one review per completed appointment, written by its
// client, and refreshes the barber's denormalized rating.
func (h *ReviewHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review data.")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if ap.ClientID != clientID {
		httperr.Forbidden(c, "forbidden", "You may only review your own appointments.")
		return
	}

	if ap.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "appointment_not_completed", "Only completed appointments can be reviewed.")
		return
	}

	review := models.Review{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		ClientID:      clientID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return h.refreshBarberRating(tx, ap.BarberID)
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "already_reviewed", "This appointment already has a review.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not save the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) refreshBarberRating(tx *gorm.DB, barberID uint) error {
	type agg struct {
		Avg   float64
		Count int
	}

	var a agg
	if err := tx.Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("barber_id = ?", barberID).
		Scan(&a).Error; err != nil {
		return err
	}

	return tx.Model(&models.Barber{}).
		Where("id = ?", barberID).
		Updates(map[string]any{
			"rating":       a.Avg,
			"rating_count": a.Count,
		}).Error
}
