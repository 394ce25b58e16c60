package store

import (
	"context"
	"errors"

	"heartlink/backend/internal/apperr"
	"heartlink/backend/internal/models"

	"gorm.io/gorm"
)

// UserStore provides data access methods for accounts.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new store bound to the given DB connection.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create persists a new account. The caller is responsible for hashing the
// password beforehand; this method only enforces username uniqueness and
// role validity.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.Username == "" || user.PasswordHash == "" || user.Name == "" {
		return apperr.Validation("missing required fields")
	}
	if !user.RoleID.Valid() {
		return apperr.Validation("invalid role")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).
		Count(&count).Error; err != nil {
		return apperr.Wrap(err, "user not found")
	}
	if count > 0 {
		return apperr.Conflict("username already exists")
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("username already exists")
		}
		return apperr.Wrap(err, "user not found")
	}
	return nil
}

// Get returns the full account row including the password hash. Only the
// login path should use this; everything else goes through FindByUsername.
func (s *UserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, apperr.Wrap(err, "user not found")
	}
	return &user, nil
}

// FindByUsername returns the account with the password hash blanked out.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RoleOf resolves just the role of an account.
func (s *UserStore) RoleOf(ctx context.Context, username string) (models.RoleID, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Select("role_id").
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return 0, apperr.Wrap(err, "user not found")
	}
	return user.RoleID, nil
}

// Exists reports whether an account with the given username exists.
func (s *UserStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(err, "user not found")
	}
	return count > 0, nil
}

// SetProfileImage replaces the profile image reference. Passing nil for both
// values clears it. Idempotent either way.
func (s *UserStore) SetProfileImage(ctx context.Context, username string, url, key *string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"profile_url": url,
			"profile_key": key,
		})
	if result.Error != nil {
		return apperr.Wrap(result.Error, "user not found")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// DefaultCandidateLimit caps how many discovery candidates one call returns.
const DefaultCandidateLimit = 10

// Candidates returns up to limit accounts eligible for discovery by the
// given user: accounts in the caller's target role set that are not the
// caller and have no existing match with the caller.
//
// Ordering is username ascending. It is deterministic, not random; callers
// wanting a shuffled feed must shuffle client-side.
func (s *UserStore) Candidates(ctx context.Context, username string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > DefaultCandidateLimit {
		limit = DefaultCandidateLimit
	}

	role, err := s.RoleOf(ctx, username)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = s.db.WithContext(ctx).
		Where("role_id IN ?", role.DiscoveryTargets()).
		Where("username <> ?", username).
		Where(`NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE (m.user_a = ? AND m.user_b = users.username)
			   OR (m.user_a = users.username AND m.user_b = ?)
		)`, username, username).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Wrap(err, "user not found")
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
