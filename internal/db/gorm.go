package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amadeuio/zeronotes-backend/internal/config"
)

var Module = fx.Provide(
	NewGormClient,
)

type (
	// User owns notes and labels. The id is a server-generated UUID.
	User struct {
		ID        string `gorm:"primaryKey"`
		Email     string `gorm:"unique;not null"`
		Password  string `gorm:"not null"`
		CreatedAt time.Time
		UpdatedAt time.Time
		Notes     []Note
		Labels    []Label
	}

	// Note ids are client-supplied UUIDs. Order is the manual sequencing key:
	// lower sorts first, new notes are seeded below the current minimum.
	Note struct {
		ID         string `gorm:"primaryKey"`
		Order      int    `gorm:"column:order;not null;index"`
		Title      *string
		Content    *string
		ColorID    *string
		IsPinned   bool   `gorm:"not null;default:false"`
		IsArchived bool   `gorm:"not null;default:false"`
		IsTrashed  bool   `gorm:"not null;default:false"`
		UserID     string `gorm:"not null;index"`
		User       User
		CreatedAt  time.Time
		UpdatedAt  time.Time
		Labels     []Label `gorm:"many2many:note_labels;constraint:OnDelete:CASCADE"`
	}

	Label struct {
		ID        string `gorm:"primaryKey"`
		Name      string `gorm:"size:100;not null"`
		UserID    string `gorm:"not null;index"`
		User      User
		CreatedAt time.Time
		UpdatedAt time.Time
		Notes     []Note `gorm:"many2many:note_labels;constraint:OnDelete:CASCADE"`
	}
)

// InitSchema migrates the schema to reflect the latest model definitions.
// Association rows in note_labels are removed by the ON DELETE CASCADE
// constraints when either parent goes away.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Note{}); err != nil {
		return errors.Wrap(err, "migrate note")
	}
	if err := db.AutoMigrate(&Label{}); err != nil {
		return errors.Wrap(err, "migrate label")
	}
	return nil
}

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		Colorful:                  true,
		IgnoreRecordNotFoundError: true,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := InitSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}
