package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"ldcomedy/internal/database"
	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a throwaway in-memory database with the full schema.
// A named shared-cache DSN keeps every pooled connection on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	svc      *RelationshipService
	favRepo  *repository.FavoriteRepository
	artist   domain.CallerIdentity
	theater  domain.CallerIdentity
	artist2  domain.CallerIdentity
	theater2 domain.CallerIdentity
}

// newFixture seeds two artists and two theaters and returns their caller
// identities.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	favRepo := repository.NewFavoriteRepository(db)
	artists := repository.NewArtistRepository(db)
	theaters := repository.NewTheaterRepository(db)

	mk := func(role, name string) domain.CallerIdentity {
		u := &models.User{Username: name, Email: name + "@example.com", Role: role}
		require.NoError(t, db.Create(u).Error)
		if role == domain.RoleArtist {
			p := &models.ArtistProfile{UserID: u.ID, StageName: name, City: "Paris"}
			require.NoError(t, db.Create(p).Error)
			return domain.CallerIdentity{UserID: u.ID, Role: role, ProfileID: p.ID}
		}
		p := &models.TheaterProfile{UserID: u.ID, VenueName: name, City: "Lyon"}
		require.NoError(t, db.Create(p).Error)
		return domain.CallerIdentity{UserID: u.ID, Role: role, ProfileID: p.ID}
	}

	return &fixture{
		db:       db,
		svc:      NewRelationshipService(favRepo, artists, theaters),
		favRepo:  favRepo,
		artist:   mk(domain.RoleArtist, "stanley"),
		theater:  mk(domain.RoleTheater, "le_rire"),
		artist2:  mk(domain.RoleArtist, "moira"),
		theater2: mk(domain.RoleTheater, "la_scene"),
	}
}
