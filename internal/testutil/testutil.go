// Package testutil provides database fixtures for tests. Each test gets its
// own in-memory SQLite database with foreign keys enforced so cascade rules
// behave like the real storage engine.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amadeuio/zeronotes-backend/internal/db"
)

func InitMemoryDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.New().String())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}

	if err := db.InitSchema(conn); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}

	return conn
}

func SetupUser(t *testing.T, conn *gorm.DB, email, password string) db.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := db.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: string(hash),
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func SetupNote(t *testing.T, conn *gorm.DB, user db.User, order int, title string) db.Note {
	note := db.Note{
		ID:     uuid.New().String(),
		Order:  order,
		Title:  &title,
		UserID: user.ID,
	}
	if err := conn.Create(&note).Error; err != nil {
		t.Fatalf("creating note: %v", err)
	}
	return note
}

func SetupLabel(t *testing.T, conn *gorm.DB, user db.User, name string) db.Label {
	label := db.Label{
		ID:     uuid.New().String(),
		Name:   name,
		UserID: user.ID,
	}
	if err := conn.Create(&label).Error; err != nil {
		t.Fatalf("creating label: %v", err)
	}
	return label
}

// CountAssociations returns the number of note_labels rows for a note.
func CountAssociations(t *testing.T, conn *gorm.DB, noteID string) int64 {
	var count int64
	if err := conn.Table("note_labels").Where("note_id = ?", noteID).Count(&count).Error; err != nil {
		t.Fatalf("counting associations: %v", err)
	}
	return count
}
