package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/cache"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
)

type BarberHandler struct {
	db    *gorm.DB
	cache *cache.CatalogCache
}

func NewBarberHandler(db *gorm.DB, catalog *cache.CatalogCache) *BarberHandler {
	return &BarberHandler{db: db, cache: catalog}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name            string `json:"name" binding:"required"`
	Bio             string `json:"bio"`
	Specialties     string `json:"specialties"`
	ExperienceYears int    `json:"experience_years"`
	UserID          *uint  `json:"user_id"`
}

// --------- Public ---------

func (h *BarberHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if barbers, ok := h.cache.GetBarbers(ctx); ok {
		c.JSON(http.StatusOK, barbers)
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	h.cache.SetBarbers(ctx, barbers)
	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) ListReviews(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("barber_id = ?", barber.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// --------- Admin ---------

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barber data.")
		return
	}

	barber := models.Barber{
		Name:            strings.TrimSpace(req.Name),
		Bio:             req.Bio,
		Specialties:     req.Specialties,
		ExperienceYears: req.ExperienceYears,
		UserID:          req.UserID,
		Active:          true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Could not create barber.")
		return
	}

	h.cache.Bust(c.Request.Context())

	c.JSON(http.StatusCreated, barber)
}
