package domain

const (
	RoleArtist  = "ARTIST"
	RoleTheater = "THEATER"
)

const (
	FavoriteStatusPending  = "PENDING"
	FavoriteStatusAccepted = "ACCEPTED"
	FavoriteStatusRejected = "REJECTED"
)

// RequestedBy records which side opened a favorite request.
// Values intentionally match the role constants.
const (
	RequestedByArtist  = RoleArtist
	RequestedByTheater = RoleTheater
)

const (
	NotificationTypeLike    = "POSTER_LIKE"
	NotificationTypeComment = "POSTER_COMMENT"
)

// CallerIdentity is the session's resolved profile: exactly one role and the
// profile id for that role. Resolved once at request entry by middleware so
// handlers and services never re-branch on which profile the user has.
type CallerIdentity struct {
	UserID    uint
	Role      string // ARTIST | THEATER
	ProfileID uint
}

func (c CallerIdentity) IsArtist() bool  { return c.Role == RoleArtist }
func (c CallerIdentity) IsTheater() bool { return c.Role == RoleTheater }

// OppositeRole returns the role on the other side of an artist-theater edge.
func OppositeRole(role string) string {
	if role == RoleArtist {
		return RoleTheater
	}
	return RoleArtist
}
