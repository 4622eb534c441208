package service

import (
	"testing"
	"time"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFeedMergesLikesAndComments(t *testing.T) {
	db := newTestDB(t)
	posters := repository.NewPosterRepository(db)
	svc := NewNotificationService(posters)

	author := &models.User{Username: "stanley", Email: "s@example.com", Role: domain.RoleArtist}
	fan := &models.User{Username: "le_rire", Email: "t@example.com", Role: domain.RoleTheater}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(fan).Error)

	poster := &models.Poster{AuthorID: author.ID, Title: "Open mic vendredi"}
	require.NoError(t, db.Create(poster).Error)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.PosterLike{PosterID: poster.ID, UserID: fan.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&models.PosterComment{PosterID: poster.ID, UserID: fan.ID, Body: "On prend!", CreatedAt: base.Add(10 * time.Minute)}).Error)

	feed, err := svc.Recent(author.ID, 20)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// Newest first: the comment came after the like.
	assert.Equal(t, domain.NotificationTypeComment, feed[0].Type)
	assert.Equal(t, "On prend!", feed[0].Preview)
	assert.Equal(t, domain.NotificationTypeLike, feed[1].Type)
	assert.Equal(t, "le_rire", feed[1].FromName)
	assert.Equal(t, "Open mic vendredi", feed[1].PosterTitle)
}

func TestNotificationFeedSkipsOwnActivity(t *testing.T) {
	db := newTestDB(t)
	posters := repository.NewPosterRepository(db)
	svc := NewNotificationService(posters)

	author := &models.User{Username: "stanley", Email: "s@example.com", Role: domain.RoleArtist}
	require.NoError(t, db.Create(author).Error)
	poster := &models.Poster{AuthorID: author.ID, Title: "Premiere"}
	require.NoError(t, db.Create(poster).Error)

	// Liking and commenting on your own poster makes no notification.
	require.NoError(t, db.Create(&models.PosterLike{PosterID: poster.ID, UserID: author.ID}).Error)
	require.NoError(t, db.Create(&models.PosterComment{PosterID: poster.ID, UserID: author.ID, Body: "bump"}).Error)

	feed, err := svc.Recent(author.ID, 20)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestNotificationFeedCapsAtLimit(t *testing.T) {
	db := newTestDB(t)
	posters := repository.NewPosterRepository(db)
	svc := NewNotificationService(posters)

	author := &models.User{Username: "stanley", Email: "s@example.com", Role: domain.RoleArtist}
	require.NoError(t, db.Create(author).Error)
	poster := &models.Poster{AuthorID: author.ID, Title: "Tournee"}
	require.NoError(t, db.Create(poster).Error)

	for i := 0; i < 5; i++ {
		fan := &models.User{Username: string(rune('a' + i)), Email: string(rune('a'+i)) + "@example.com", Role: domain.RoleTheater}
		require.NoError(t, db.Create(fan).Error)
		require.NoError(t, db.Create(&models.PosterLike{PosterID: poster.ID, UserID: fan.ID}).Error)
	}

	feed, err := svc.Recent(author.ID, 3)
	require.NoError(t, err)
	assert.Len(t, feed, 3)
}
