package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ldcomedy/config"
	"ldcomedy/internal/database"
	"ldcomedy/internal/domain"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/repository"
	"ldcomedy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type favoriteEnv struct {
	engine       *gin.Engine
	db           *gorm.DB
	artists      *repository.ArtistRepository
	theaters     *repository.TheaterRepository
	artistToken  string
	theaterToken string
	artistID     uint
	theaterID    uint
}

func setupFavoriteEnv(t *testing.T) *favoriteEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := config.Load()
	userRepo := repository.NewUserRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	theaterRepo := repository.NewTheaterRepository(db)
	favRepo := repository.NewFavoriteRepository(db)

	authSvc := service.NewAuthService(cfg, userRepo, artistRepo, theaterRepo)
	relationshipSvc := service.NewRelationshipService(favRepo, artistRepo, theaterRepo)
	favoriteHandler := NewFavoriteHandler(relationshipSvc)

	r := gin.New()
	fav := r.Group("/api/v1/favorite")
	fav.Use(middleware.AuthRequired(&cfg.JWT), middleware.ProfileRequired(artistRepo, theaterRepo))
	{
		fav.POST("", favoriteHandler.Send)
		fav.DELETE("", favoriteHandler.Remove)
		fav.POST("/accept", favoriteHandler.Accept)
		fav.POST("/reject", favoriteHandler.Reject)
		fav.GET("/friends", favoriteHandler.ListFriends)
		fav.GET("/requests", favoriteHandler.ListIncoming)
		fav.GET("/sent", favoriteHandler.ListOutgoing)
		fav.GET("/check", favoriteHandler.Check)
	}

	ua, artistToken, _, err := authSvc.Register("artist@example.com", "stanley", "secret-pass", domain.RoleArtist)
	require.NoError(t, err)
	ut, theaterToken, _, err := authSvc.Register("theater@example.com", "le_rire", "secret-pass", domain.RoleTheater)
	require.NoError(t, err)

	ap, err := artistRepo.GetByUserID(ua.ID)
	require.NoError(t, err)
	tp, err := theaterRepo.GetByUserID(ut.ID)
	require.NoError(t, err)

	return &favoriteEnv{
		engine:       r,
		db:           db,
		artists:      artistRepo,
		theaters:     theaterRepo,
		artistToken:  artistToken,
		theaterToken: theaterToken,
		artistID:     ap.ID,
		theaterID:    tp.ID,
	}
}

func (e *favoriteEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func TestFavoriteRequiresAuth(t *testing.T) {
	e := setupFavoriteEnv(t)
	rec := e.do(t, http.MethodPost, "/api/v1/favorite", "", gin.H{"theater_id": e.theaterID})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavoriteSendAcceptFlow(t *testing.T) {
	e := setupFavoriteEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID          uint   `json:"id"`
		Status      string `json:"status"`
		RequestedBy string `json:"requested_by"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, "ARTIST", created.RequestedBy)

	// Theater sees it incoming; artist sees it sent.
	rec = e.do(t, http.MethodGet, "/api/v1/favorite/requests", e.theaterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var incoming struct {
		Requests []struct {
			RequestID uint `json:"request_id"`
		} `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &incoming))
	require.Len(t, incoming.Requests, 1)
	assert.Equal(t, created.ID, incoming.Requests[0].RequestID)

	rec = e.do(t, http.MethodGet, "/api/v1/favorite/sent", e.artistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Theater accepts; both sides list one friend.
	rec = e.do(t, http.MethodPost, "/api/v1/favorite/accept", e.theaterToken, gin.H{"request_id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, token := range []string{e.artistToken, e.theaterToken} {
		rec = e.do(t, http.MethodGet, "/api/v1/favorite/friends", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var friends struct {
			Friends []struct {
				Friend struct {
					Name string `json:"name"`
				} `json:"friend"`
			} `json:"friends"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
		require.Len(t, friends.Friends, 1)
	}
}

func TestFavoriteRejectFlow(t *testing.T) {
	e := setupFavoriteEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.theaterToken, gin.H{"artist_id": e.artistID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Reject by pair instead of id.
	rec = e.do(t, http.MethodPost, "/api/v1/favorite/reject", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/v1/favorite/friends", e.artistToken, nil)
	assert.Contains(t, rec.Body.String(), `"friends":[]`)

	// The edge still exists for the check endpoint.
	rec = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/favorite/check?theater_id=%d", e.theaterID), e.artistToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exists":true`)
}

func TestFavoriteDuplicateConflict(t *testing.T) {
	e := setupFavoriteEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFavoriteWrongRolePairing(t *testing.T) {
	e := setupFavoriteEnv(t)

	// An artist addressing an artist id is a 400.
	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"artist_id": e.artistID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown theater id is a 400 too (invalid target).
	rec = e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": 99999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoriteAcceptByInitiatorFails(t *testing.T) {
	e := setupFavoriteEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = e.do(t, http.MethodPost, "/api/v1/favorite/accept", e.artistToken, gin.H{"request_id": created.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteRemoveThenResend(t *testing.T) {
	e := setupFavoriteEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	rec = e.do(t, http.MethodPost, "/api/v1/favorite/accept", e.theaterToken, gin.H{"request_id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusOK, rec.Code)

	// Deleting again is still a success.
	rec = e.do(t, http.MethodDelete, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestFavoriteMissingProfileIs404(t *testing.T) {
	e := setupFavoriteEnv(t)

	// Simulate an account whose profile was never completed.
	require.NoError(t, e.db.Exec("DELETE FROM artist_profiles").Error)

	rec := e.do(t, http.MethodPost, "/api/v1/favorite", e.artistToken, gin.H{"theater_id": e.theaterID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
