package service

import (
	"errors"
	"time"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidTarget    = errors.New("invalid target profile")
	ErrDuplicateRequest = errors.New("favorite request already exists")
	ErrRequestNotFound  = errors.New("favorite request not found")
)

// RelationshipService owns the favorite-request lifecycle between artists and
// theaters: send, accept/reject by the other side, the friends/pending views
// and removal. Only artist<->theater edges are modeled.
type RelationshipService struct {
	favorites *repository.FavoriteRepository
	artists   *repository.ArtistRepository
	theaters  *repository.TheaterRepository
}

func NewRelationshipService(
	favorites *repository.FavoriteRepository,
	artists *repository.ArtistRepository,
	theaters *repository.TheaterRepository,
) *RelationshipService {
	return &RelationshipService{favorites: favorites, artists: artists, theaters: theaters}
}

// ProfileSummary is the other party of an edge, shaped for listings.
type ProfileSummary struct {
	ProfileID uint   `json:"profile_id"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	City      string `json:"city"`
}

// FriendEntry is one accepted edge from the caller's point of view.
type FriendEntry struct {
	RequestID uint           `json:"request_id"`
	Friend    ProfileSummary `json:"friend"`
	Since     time.Time      `json:"since"`
}

// RequestEntry is one pending edge from the caller's point of view.
type RequestEntry struct {
	RequestID   uint           `json:"request_id"`
	Other       ProfileSummary `json:"profile"`
	RequestedBy string         `json:"requested_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

// pairFor orients the unordered (caller, other) pair onto the table's
// (artist_id, theater_id) columns.
func pairFor(caller domain.CallerIdentity, otherProfileID uint) (artistID, theaterID uint) {
	if caller.IsArtist() {
		return caller.ProfileID, otherProfileID
	}
	return otherProfileID, caller.ProfileID
}

func artistSummary(p *models.ArtistProfile) ProfileSummary {
	return ProfileSummary{ProfileID: p.ID, Role: domain.RoleArtist, Name: p.StageName, ImageURL: p.ImageURL, City: p.City}
}

func theaterSummary(p *models.TheaterProfile) ProfileSummary {
	return ProfileSummary{ProfileID: p.ID, Role: domain.RoleTheater, Name: p.VenueName, ImageURL: p.ImageURL, City: p.City}
}

// Send opens a PENDING request from the caller toward the opposite-role
// profile. A PENDING or ACCEPTED edge already linking the pair refuses the
// duplicate; a removed or rejected-then-removed edge does not. Two racing
// sends can still both pass the pre-check, the store is the only serializer
// at that point.
func (s *RelationshipService) Send(caller domain.CallerIdentity, targetProfileID uint) (*models.FavoriteRequest, error) {
	if targetProfileID == 0 {
		return nil, ErrInvalidTarget
	}
	// Target must exist on the opposite side.
	if caller.IsArtist() {
		if _, err := s.theaters.GetByID(targetProfileID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidTarget
			}
			return nil, err
		}
	} else {
		if _, err := s.artists.GetByID(targetProfileID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidTarget
			}
			return nil, err
		}
	}
	artistID, theaterID := pairFor(caller, targetProfileID)
	existing, err := s.favorites.GetActiveByPair(artistID, theaterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}
	req := &models.FavoriteRequest{
		ArtistID:    artistID,
		TheaterID:   theaterID,
		Status:      domain.FavoriteStatusPending,
		RequestedBy: caller.Role,
	}
	if err := s.favorites.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Respond accepts or rejects a PENDING request. The request is located either
// by id or by the caller's pair with otherProfileID (id wins when both are
// set). The caller must be the non-initiating party: their profile id must
// occupy their role's column and requested_by must name the other role.
func (s *RelationshipService) Respond(caller domain.CallerIdentity, requestID, otherProfileID uint, accept bool) (*models.FavoriteRequest, error) {
	var req *models.FavoriteRequest
	var err error
	if requestID != 0 {
		req, err = s.favorites.GetByID(requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRequestNotFound
			}
			return nil, err
		}
	} else if otherProfileID != 0 {
		artistID, theaterID := pairFor(caller, otherProfileID)
		req, err = s.favorites.GetPendingByPair(artistID, theaterID)
		if err != nil {
			return nil, err
		}
	}
	if req == nil || !req.IsPending() {
		return nil, ErrRequestNotFound
	}
	if req.RequestedBy != domain.OppositeRole(caller.Role) || req.ProfileIDFor(caller.Role) != caller.ProfileID {
		// The initiator (or a stranger) cannot resolve the request.
		return nil, ErrRequestNotFound
	}
	status := domain.FavoriteStatusRejected
	if accept {
		status = domain.FavoriteStatusAccepted
	}
	updated, err := s.favorites.SetStatus(req.ID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a race: the row was resolved or removed underneath us.
		return nil, ErrRequestNotFound
	}
	req.Status = status
	now := time.Now()
	req.RespondedAt = &now
	return req, nil
}

// ListFriends returns every ACCEPTED edge touching the caller, resolved to
// the other party. No ordering is promised.
func (s *RelationshipService) ListFriends(caller domain.CallerIdentity) ([]FriendEntry, error) {
	var rows []models.FavoriteRequest
	var err error
	if caller.IsArtist() {
		rows, err = s.favorites.ListAcceptedForArtist(caller.ProfileID)
	} else {
		rows, err = s.favorites.ListAcceptedForTheater(caller.ProfileID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]FriendEntry, 0, len(rows))
	for _, r := range rows {
		entry := FriendEntry{RequestID: r.ID, Since: r.CreatedAt}
		if caller.IsArtist() {
			entry.Friend = theaterSummary(&r.Theater)
		} else {
			entry.Friend = artistSummary(&r.Artist)
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListIncoming returns PENDING requests awaiting the caller's decision,
// newest first.
func (s *RelationshipService) ListIncoming(caller domain.CallerIdentity) ([]RequestEntry, error) {
	return s.listPending(caller, domain.OppositeRole(caller.Role))
}

// ListOutgoing returns the caller's own unanswered requests, newest first.
func (s *RelationshipService) ListOutgoing(caller domain.CallerIdentity) ([]RequestEntry, error) {
	return s.listPending(caller, caller.Role)
}

func (s *RelationshipService) listPending(caller domain.CallerIdentity, requestedBy string) ([]RequestEntry, error) {
	var rows []models.FavoriteRequest
	var err error
	if caller.IsArtist() {
		rows, err = s.favorites.ListPendingForArtist(caller.ProfileID, requestedBy)
	} else {
		rows, err = s.favorites.ListPendingForTheater(caller.ProfileID, requestedBy)
	}
	if err != nil {
		return nil, err
	}
	out := make([]RequestEntry, 0, len(rows))
	for _, r := range rows {
		entry := RequestEntry{RequestID: r.ID, RequestedBy: r.RequestedBy, CreatedAt: r.CreatedAt}
		if caller.IsArtist() {
			entry.Other = theaterSummary(&r.Theater)
		} else {
			entry.Other = artistSummary(&r.Artist)
		}
		out = append(out, entry)
	}
	return out, nil
}

// Remove deletes the edge between the caller and the other profile whatever
// its status. Removing a non-existent edge succeeds; a later Send may then
// open a fresh request.
func (s *RelationshipService) Remove(caller domain.CallerIdentity, otherProfileID uint) error {
	if otherProfileID == 0 {
		return ErrInvalidTarget
	}
	artistID, theaterID := pairFor(caller, otherProfileID)
	return s.favorites.DeleteByPair(artistID, theaterID)
}

// Check reports whether any edge, in any status, links the caller with the
// other profile.
func (s *RelationshipService) Check(caller domain.CallerIdentity, otherProfileID uint) (bool, error) {
	if otherProfileID == 0 {
		return false, ErrInvalidTarget
	}
	artistID, theaterID := pairFor(caller, otherProfileID)
	return s.favorites.ExistsByPair(artistID, theaterID)
}
