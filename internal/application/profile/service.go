package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/domain"
)

var avatarExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Service struct {
	users   Users
	cache   Cache
	pub     EventPublisher
	avatars AvatarStorage
	log     zerolog.Logger

	now   func() time.Time
	audit func(action string, fields map[string]string)
}

// NewService wires the profile API. cache and avatars may be nil:
// reads then always hit the store and avatar uploads report feature_disabled.
func NewService(users Users, cache Cache, pub EventPublisher, avatars AvatarStorage) *Service {
	return &Service{
		users:   users,
		cache:   cache,
		pub:     pub,
		avatars: avatars,
		log:     zerolog.Nop(),
		now:     time.Now,
		audit:   func(string, map[string]string) {},
	}
}

func (s *Service) WithLogger(lg zerolog.Logger) *Service {
	s.log = lg
	return s
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// GetProfile returns the caller's own record. Cache failures degrade to a store read.
func (s *Service) GetProfile(ctx context.Context, callerID string) (domain.PublicUser, error) {
	if s.cache != nil {
		u, ok, err := s.cache.Get(ctx, callerID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("user_id", callerID).Msg("profile cache read failed")
		case ok:
			return u, nil
		}
	}

	u, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.remember(ctx, u)
	return u, nil
}

// UpdateProfile applies patch to the caller's record only.
func (s *Service) UpdateProfile(ctx context.Context, callerID string, patch domain.ProfilePatch) (domain.PublicUser, error) {
	u, err := s.users.Update(ctx, callerID, patch)
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.remember(ctx, u)

	if patch.IsEmpty() {
		return u, nil
	}

	evt := domain.ProfileUpdatedEvent{UserID: u.ID, Fields: patch.ChangedFields(), OccurredAt: s.now().UTC()}
	if err := s.pub.PublishProfileUpdated(ctx, evt); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("publish user.profile.updated failed")
	}
	s.audit("profile_updated", map[string]string{"user_id": u.ID})
	return u, nil
}

type AvatarUpload struct {
	UploadURL string
	ImageURL  string
	ExpiresIn int64 // seconds
}

// RequestAvatarUpload presigns a PUT for a new avatar object. The client
// uploads the bytes itself and then PATCHes imageUrl with ImageURL.
func (s *Service) RequestAvatarUpload(ctx context.Context, callerID, contentType string) (AvatarUpload, error) {
	if s.avatars == nil {
		return AvatarUpload{}, domain.ErrFeatureDisabled("avatar_upload")
	}
	ext, ok := avatarExt[contentType]
	if !ok {
		return AvatarUpload{}, domain.ErrUnsupportedContentType(contentType)
	}
	if _, err := s.users.FindByID(ctx, callerID); err != nil {
		return AvatarUpload{}, err
	}

	key := "avatars/" + callerID + "/" + uuid.NewString() + "." + ext
	url, ttl, err := s.avatars.PresignPut(ctx, key, contentType)
	if err != nil {
		return AvatarUpload{}, err
	}
	return AvatarUpload{
		UploadURL: url,
		ImageURL:  s.avatars.PublicURL(key),
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

func (s *Service) remember(ctx context.Context, u domain.PublicUser) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, u); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("profile cache write failed")
	}
}
