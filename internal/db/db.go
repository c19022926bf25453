package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/config"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.ShopSettings{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Exclusion constraint: no two confirmed appointments for the same barber
	// may overlap. The repository's FOR UPDATE check catches conflicts first;
	// this is the database-level guarantee behind it. Booting without it
	// would silently drop the no-double-booking backstop, so both statements
	// are fatal on failure.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tsrange(start_time, end_time) WITH &&
            ) WHERE (status = 'confirmed');
        EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
        END $$
    `).Error; err != nil {
		log.Fatalf("failed to ensure appointments exclusion constraint: %v", err)
	}

	seedSettings(db)

	return db
}

func seedSettings(db *gorm.DB) {
	var count int64
	db.Model(&models.ShopSettings{}).Count(&count)
	if count > 0 {
		return
	}

	db.Create(&models.ShopSettings{
		Name:              "SharpCut",
		Timezone:          timezone.DefaultTimezone,
		MinAdvanceMinutes: 60,
	})
}
