package movies

import (
	"testing"

	"reelcollator/src/config"
	models "reelcollator/src/modules/movies/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB wires the service layer to a fresh in-memory SQLite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.MigrateMovies(db))
	require.NoError(t, models.MigrateUsers(db))

	config.DB = db
	config.RDB = nil
	return db
}

func seedMovie(t *testing.T, db *gorm.DB, movie models.Movie) {
	t.Helper()
	require.NoError(t, db.Create(&movie).Error)
}
