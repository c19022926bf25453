package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/storage"
)

const avatarMaxDim = 512

type MeHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewMeHandler(db *gorm.DB, uploader *storage.Uploader) *MeHandler {
	return &MeHandler{db: db, uploader: uploader}
}

type UpdateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load profile.")
		return
	}

	c.JSON(http.StatusOK, userPayload(&user))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load profile.")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save profile.")
		return
	}

	c.JSON(http.StatusOK, userPayload(&user))
}

// UploadAvatar accepts a multipart jpeg/png, converts it to webp and stores
// it in the media bucket. The barber profile picture follows the linked
// account's avatar.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load profile.")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An avatar file is required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the uploaded file.")
		return
	}
	defer src.Close()

	encoded, err := storage.EncodeWebP(src, avatarMaxDim)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file is not a supported image.")
		return
	}

	key := fmt.Sprintf("avatars/user-%d.webp", user.ID)
	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the avatar.")
		return
	}

	user.AvatarURL = url
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save profile.")
		return
	}

	h.db.Model(&models.Barber{}).
		Where("user_id = ?", user.ID).
		Update("avatar_url", url)

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
