package middleware

import (
	"net/http"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/repository"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// ProfileRequired resolves the session user to a CallerIdentity once per
// request. A user whose profile was never completed gets a 404 here instead
// of null-checks scattered through every handler.
func ProfileRequired(artists *repository.ArtistRepository, theaters *repository.TheaterRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		switch GetRole(c) {
		case domain.RoleArtist:
			p, err := artists.GetByUserID(userID)
			if err != nil || p == nil {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.Set(callerKey, domain.CallerIdentity{UserID: userID, Role: domain.RoleArtist, ProfileID: p.ID})
		case domain.RoleTheater:
			p, err := theaters.GetByUserID(userID)
			if err != nil || p == nil {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.Set(callerKey, domain.CallerIdentity{UserID: userID, Role: domain.RoleTheater, ProfileID: p.ID})
		default:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.Next()
	}
}

// GetCaller returns the resolved identity (must be used after ProfileRequired).
func GetCaller(c *gin.Context) domain.CallerIdentity {
	v, _ := c.Get(callerKey)
	if v == nil {
		return domain.CallerIdentity{}
	}
	return v.(domain.CallerIdentity)
}
