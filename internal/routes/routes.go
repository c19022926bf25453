package routes

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	"github.com/sharpcut-app/booking-api/internal/cache"
	"github.com/sharpcut-app/booking-api/internal/config"
	"github.com/sharpcut-app/booking-api/internal/events"
	"github.com/sharpcut-app/booking-api/internal/handlers"
	infraRepo "github.com/sharpcut-app/booking-api/internal/infra/repository"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	"github.com/sharpcut-app/booking-api/internal/storage"
	ucBooking "github.com/sharpcut-app/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *goredis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	eventPublisher := events.NewPublisher(rdb)
	catalogCache := cache.NewCatalogCache(rdb)
	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	bookUC := ucBooking.NewBook(
		bookingRepo,
		auditDispatcher,
		eventPublisher,
	)

	cancelUC := ucBooking.NewCancel(
		bookingRepo,
		auditDispatcher,
		eventPublisher,
	)

	rescheduleUC := ucBooking.NewReschedule(
		bookingRepo,
		auditDispatcher,
		eventPublisher,
	)

	completeUC := ucBooking.NewComplete(
		bookingRepo,
		auditDispatcher,
	)

	listBarberDayUC := ucBooking.NewListBarberDay(bookingRepo)
	listClientAppointmentsUC := ucBooking.NewListClientAppointments(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, uploader)

	barberHandler := handlers.NewBarberHandler(db, catalogCache)
	serviceHandler := handlers.NewServiceHandler(db, catalogCache)
	availabilityHandler := handlers.NewAvailabilityHandler(db, getAvailabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		rescheduleUC,
		listClientAppointmentsUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, listBarberDayUC, completeUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)
	settingsHandler := handlers.NewSettingsHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/reviews", barberHandler.ListReviews)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/availability", availabilityHandler.Get)
		api.GET("/settings", settingsHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/users/me", meHandler.GetMe)
			secured.PATCH("/users/me", meHandler.UpdateMe)
			secured.POST("/users/me/avatar", meHandler.UploadAvatar)

			// ------------------------------
			// APPOINTMENTS (CLIENT)
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id", appointmentHandler.Reschedule)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			secured.POST("/reviews", reviewHandler.Create)

			// ------------------------------
			// BARBER AREA
			// ------------------------------
			barberArea := secured.Group("/me")
			barberArea.Use(middleware.RequireRole("barber", "admin"))
			{
				barberArea.GET("/schedule", scheduleHandler.Day)
				barberArea.PATCH("/appointments/:id/complete", scheduleHandler.Complete)

				barberArea.GET("/working-hours", workingHoursHandler.Get)
				barberArea.PUT("/working-hours", workingHoursHandler.Update)
			}

			// ------------------------------
			// ADMIN AREA
			// ------------------------------
			adminArea := secured.Group("/admin")
			adminArea.Use(middleware.RequireRole("admin"))
			{
				adminArea.POST("/barbers", barberHandler.Create)
				adminArea.POST("/services", serviceHandler.Create)
				adminArea.PATCH("/services/:id", serviceHandler.Update)

				adminArea.PATCH("/settings", settingsHandler.Update)
				adminArea.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
