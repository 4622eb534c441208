package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ldcomedy/config"
	"ldcomedy/internal/auth"
	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
	ErrInvalidRole    = errors.New("role must be ARTIST or THEATER")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	artists  *repository.ArtistRepository
	theaters *repository.TheaterRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, artists *repository.ArtistRepository, theaters *repository.TheaterRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, artists: artists, theaters: theaters}
}

// Register creates the user and an empty profile of the chosen role, so the
// account is usable by the role-gated routes right away.
func (s *AuthService) Register(email, username, password, role string) (*models.User, string, string, error) {
	if role != domain.RoleArtist && role != domain.RoleTheater {
		return nil, "", "", ErrInvalidRole
	}
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	_, err = s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", "", ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	if err := s.createEmptyProfile(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.issueTokens(u)
	return u, access, refresh, err
}

func (s *AuthService) createEmptyProfile(u *models.User) error {
	if u.IsArtist() {
		return s.artists.Create(&models.ArtistProfile{UserID: u.ID, StageName: u.Username})
	}
	return s.theaters.Create(&models.TheaterProfile{UserID: u.ID, VenueName: u.Username})
}

func (s *AuthService) issueTokens(u *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return access, "", err
	}
	return access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.issueTokens(u)
	return u, access, refresh, err
}

// LoginWithGoogle creates or finds a user by Google ID and returns user +
// tokens + isNew flag. role is only applied when creating a brand new user;
// an empty or unknown role defaults to ARTIST.
func (s *AuthService) LoginWithGoogle(googleID, email, name, avatarURL, role string) (*models.User, string, string, bool, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		access, refresh, err := s.issueTokens(u)
		return u, access, refresh, false, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}
	// Link Google to an existing email account if there is one.
	if existing, _ := s.userRepo.GetByEmail(email); existing != nil {
		gid := googleID
		existing.GoogleID = &gid
		if avatarURL != "" {
			existing.AvatarURL = avatarURL
		}
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, refresh, err := s.issueTokens(existing)
		return existing, access, refresh, false, err
	}
	if role != domain.RoleTheater {
		role = domain.RoleArtist
	}
	gid := googleID
	username := strings.Split(email, "@")[0]
	if name != "" {
		username = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}
	if username == "" {
		username = fmt.Sprintf("user%d", time.Now().UnixNano()%100000)
	}
	u = &models.User{
		Email:     email,
		Username:  username,
		GoogleID:  &gid,
		Role:      role,
		AvatarURL: avatarURL,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", false, err
	}
	if err := s.createEmptyProfile(u); err != nil {
		return nil, "", "", false, err
	}
	access, refresh, err := s.issueTokens(u)
	return u, access, refresh, true, err
}

// ChangePassword updates the user's password. Requires current password verification.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	return s.issueTokens(u)
}
