package services

import (
	"fmt"
	"strings"

	"northlink/internal/models"
	"northlink/internal/repositories"
)

// ProfileService handles business logic for user profiles.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile retrieves a user's profile.
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(userID)
}

// UpsertProfile creates or updates the user's profile from onboarding input.
func (s *ProfileService) UpsertProfile(userID, displayName, avatarURL string) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	profile := &models.Profile{
		ID:          userID,
		DisplayName: strings.TrimSpace(displayName),
		AvatarURL:   strings.TrimSpace(avatarURL),
	}
	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// EnsureProfile guarantees a profile row exists after sign-up, deriving a
// placeholder display name from the email's local part. An existing profile
// is left untouched.
func (s *ProfileService) EnsureProfile(userID, email string) (*models.Profile, error) {
	if existing, err := s.profileRepo.GetByID(userID); err == nil && existing != nil {
		return existing, nil
	}

	name := "New User"
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	profile := &models.Profile{
		ID:          userID,
		DisplayName: name,
	}
	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
