package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"ldcomedy/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ArtistProfile{},
		&models.TheaterProfile{},
		&models.FavoriteRequest{},
		&models.Poster{},
		&models.PosterComment{},
		&models.PosterLike{},
		&models.Conversation{},
		&models.Message{},
	))
	return db
}

func seedPair(t *testing.T, db *gorm.DB) (artist models.ArtistProfile, theater models.TheaterProfile) {
	t.Helper()
	ua := &models.User{Username: "artist1", Email: "artist1@example.com", Role: "ARTIST"}
	ut := &models.User{Username: "theater1", Email: "theater1@example.com", Role: "THEATER"}
	require.NoError(t, db.Create(ua).Error)
	require.NoError(t, db.Create(ut).Error)
	artist = models.ArtistProfile{UserID: ua.ID, StageName: "artist1"}
	theater = models.TheaterProfile{UserID: ut.ID, VenueName: "theater1"}
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&theater).Error)
	return artist, theater
}
