package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

func NewPostgres(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	return db, err
}

func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Institution{},
		&models.Candidate{},
		&models.Supervisor{},
		&models.Sector{},
		&models.Course{},
		&models.Cohort{},
		&models.PaymentPlan{},
		&models.DocumentModel{},
		&models.Contract{},
		&models.ScheduleRow{},
		&models.DocumentTemplate{},
		&models.TagDefinition{},
		&models.GeneratedDocument{},
	)
}
