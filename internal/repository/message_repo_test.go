package repository

import (
	"testing"

	"ldcomedy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateConversationIsStable(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	artist, theater := seedPair(t, db)

	conv, err := repo.GetOrCreateConversation(artist.ID, theater.ID)
	require.NoError(t, err)

	again, err := repo.GetOrCreateConversation(artist.ID, theater.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	artist, theater := seedPair(t, db)

	conv, err := repo.GetOrCreateConversation(artist.ID, theater.ID)
	require.NoError(t, err)

	// Theater sends three, artist sends one back.
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateMessage(&models.Message{
			ConversationID: conv.ID, SenderID: theater.UserID, Body: "dispo vendredi?",
		}))
	}
	require.NoError(t, repo.CreateMessage(&models.Message{
		ConversationID: conv.ID, SenderID: artist.UserID, Body: "oui!",
	}))

	// The artist has 3 unread, the theater 1: own messages never count.
	unread, err := repo.CountUnread(conv.ID, artist.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	unread, err = repo.CountUnread(conv.ID, theater.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, repo.MarkRead(conv.ID, artist.UserID))

	unread, err = repo.CountUnread(conv.ID, artist.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	// Reading on one side leaves the other side untouched.
	unread, err = repo.CountUnread(conv.ID, theater.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestCountUnreadForUserAcrossThreads(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	artist, theater := seedPair(t, db)

	// Second theater with its own thread to the same artist.
	u2 := &models.User{Username: "theater2", Email: "theater2@example.com", Role: "THEATER"}
	require.NoError(t, db.Create(u2).Error)
	theater2 := models.TheaterProfile{UserID: u2.ID, VenueName: "theater2"}
	require.NoError(t, db.Create(&theater2).Error)

	conv1, err := repo.GetOrCreateConversation(artist.ID, theater.ID)
	require.NoError(t, err)
	conv2, err := repo.GetOrCreateConversation(artist.ID, theater2.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateMessage(&models.Message{ConversationID: conv1.ID, SenderID: theater.UserID, Body: "salut"}))
	require.NoError(t, repo.CreateMessage(&models.Message{ConversationID: conv2.ID, SenderID: theater2.UserID, Body: "bonjour"}))
	require.NoError(t, repo.CreateMessage(&models.Message{ConversationID: conv2.ID, SenderID: theater2.UserID, Body: "toujours libre?"}))

	total, err := repo.CountUnreadForUser(artist.UserID, []uint{conv1.ID, conv2.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// No threads, no unread.
	total, err = repo.CountUnreadForUser(artist.UserID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}
