package service

import (
	"context"
	"errors"
	"io"

	"eventify/internal/models"
	"eventify/internal/observability"
	"eventify/internal/repository"
	"eventify/internal/storage"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	store       ObjectStorage
}

type UpdateProfileInput struct {
	UserID    uint
	ProfileID uint
	Name      *string
	Bio       *string
	Location  *string
}

type UploadAvatarInput struct {
	UserID      uint
	ProfileID   uint
	Body        io.Reader
	Size        int64
	ContentType string
}

func NewProfileService(profileRepo repository.ProfileRepository, store ObjectStorage) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		store:       store,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint, viewerID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	s.decorate(profile, viewerID)
	return profile, nil
}

func (s *ProfileService) GetProfileByOwner(ctx context.Context, ownerID uint, viewerID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByOwnerID(ctx, ownerID, viewerID)
	if err != nil {
		return nil, err
	}
	s.decorate(profile, viewerID)
	return profile, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		s.decorate(p, viewerID)
	}
	return profiles, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetForUpdate(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(in.UserID, profile); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if len(*in.Name) > 100 {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		profile.Name = *in.Name
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, profile.ID, in.UserID)
}

// UploadAvatar stores a new avatar for the profile and drops the old object.
func (s *ProfileService) UploadAvatar(ctx context.Context, in UploadAvatarInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetForUpdate(ctx, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(in.UserID, profile); err != nil {
		return nil, err
	}
	if err := validateUpload(in.Size, in.ContentType); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, models.NewInternalError(errors.New("object storage not configured"))
	}

	key, err := s.store.Put(ctx, "avatars", in.Body, in.Size, in.ContentType)
	if err != nil {
		observability.MediaUploads.WithLabelValues("avatar", "error").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.MediaUploads.WithLabelValues("avatar", "ok").Inc()

	oldKey := profile.Avatar
	profile.Avatar = key
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if oldKey != "" {
		_ = s.store.Remove(ctx, oldKey)
	}

	return s.GetProfile(ctx, profile.ID, in.UserID)
}

func (s *ProfileService) decorate(profile *models.Profile, viewerID uint) {
	profile.IsOwner = viewerID != 0 && viewerID == profile.OwnerID
	if profile.Avatar == "" || s.store == nil {
		profile.AvatarURL = storage.DefaultAvatarURL
		return
	}
	profile.AvatarURL = s.store.URL(profile.Avatar)
}
