package repos

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/verdora/verdora-backend/internal/types"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repos_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Business{},
		&types.UserFavorite{},
		&types.Achievement{},
		&types.UserAchievement{},
		&types.UserInteraction{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
