package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/storage"
)

var allowedAvatarTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// SupportedImage reports whether a Content-Type is accepted for avatars.
func SupportedImage(contentType string) bool {
	_, ok := allowedAvatarTypes[contentType]
	return ok
}

// Service implements the profile operations.
type Service struct {
	repo  *Repository
	files *storage.Disk
}

// NewService creates the profile service.
func NewService(repo *Repository, files *storage.Disk) *Service {
	return &Service{repo: repo, files: files}
}

// Get returns the caller's own profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// GetPublic returns the reduced view of any user's profile.
func (s *Service) GetPublic(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	return s.repo.GetPublic(ctx, userID)
}

// UpdateInput carries the patchable fields. Nil means leave unchanged.
type UpdateInput struct {
	FullName    *string         `json:"full_name"`
	Preferences json.RawMessage `json:"preferences"`
}

// Update applies a partial edit and returns the fresh profile. Input
// shape is validated by the handler.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*Profile, error) {
	if in.FullName != nil {
		if err := s.repo.UpdateName(ctx, userID, strings.TrimSpace(*in.FullName)); err != nil {
			return nil, err
		}
	}
	if len(in.Preferences) > 0 {
		if err := s.repo.UpdatePreferences(ctx, userID, in.Preferences); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, userID)
}

// SetAvatar stores the image and points the profile at it. The previous
// file is deleted best-effort after the row is updated.
func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*Profile, error) {
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported avatar type %q", contentType)
	}

	url, err := s.files.Save(data, ext)
	if err != nil {
		return nil, err
	}

	previous, err := s.repo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		// The orphaned file is picked up by the nightly cleanup.
		return nil, err
	}
	if previous != nil && *previous != "" {
		if err := s.files.Delete(*previous); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to delete previous avatar")
		}
	}

	return s.repo.Get(ctx, userID)
}
