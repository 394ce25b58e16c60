package store

import (
	"context"
	"errors"

	"heartlink/backend/internal/apperr"
	"heartlink/backend/internal/models"

	"gorm.io/gorm"
)

// MatchStore provides data access methods for match pairs.
type MatchStore struct {
	db *gorm.DB
}

// NewMatchStore creates a new store bound to the given DB connection.
func NewMatchStore(db *gorm.DB) *MatchStore {
	return &MatchStore{db: db}
}

// MatchSummary is the counterpart's public summary attached to each match
// when listing a user's matches.
type MatchSummary struct {
	Username   string
	Name       string
	ProfileURL *string
	RoleID     models.RoleID
}

// Create records a match between two distinct existing accounts. The pair is
// stored normalized; the unique index on (user_a, user_b) makes concurrent
// creates for the same pair collapse into a single Conflict.
func (s *MatchStore) Create(ctx context.Context, usernameA, usernameB string) (*models.Match, error) {
	if usernameA == "" || usernameB == "" {
		return nil, apperr.Validation("both usernames are required")
	}
	if usernameA == usernameB {
		return nil, apperr.Validation("cannot match a user with themselves")
	}

	for _, username := range []string{usernameA, usernameB} {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ?", username).
			Count(&count).Error; err != nil {
			return nil, apperr.Wrap(err, "user not found")
		}
		if count == 0 {
			return nil, apperr.NotFound("user not found")
		}
	}

	a, b := models.NormalizePair(usernameA, usernameB)

	// Pre-check keeps the common case's error message clean; the unique
	// index is what actually guarantees pair uniqueness under races.
	exists, err := s.Exists(ctx, a, b)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("match already exists between these users")
	}

	match := models.Match{UserA: a, UserB: b}
	if err := s.db.WithContext(ctx).Create(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("match already exists between these users")
		}
		return nil, apperr.Wrap(err, "user not found")
	}
	return &match, nil
}

// Exists reports whether a match exists for the unordered pair.
func (s *MatchStore) Exists(ctx context.Context, usernameA, usernameB string) (bool, error) {
	a, b := models.NormalizePair(usernameA, usernameB)
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Match{}).
		Where("user_a = ? AND user_b = ?", a, b).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(err, "match not found")
	}
	return count > 0, nil
}

// ListFor returns, for every match touching the given user, the other
// participant's public summary, in match creation order.
func (s *MatchStore) ListFor(ctx context.Context, username string) ([]MatchSummary, error) {
	var matches []models.Match
	err := s.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", username, username).
		Preload("UserAAccount").
		Preload("UserBAccount").
		Order("created_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, apperr.Wrap(err, "match not found")
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		other := m.UserAAccount
		if m.UserA == username {
			other = m.UserBAccount
		}
		if other.Username == "" {
			continue
		}
		summaries = append(summaries, MatchSummary{
			Username:   other.Username,
			Name:       other.Name,
			ProfileURL: other.ProfileURL,
			RoleID:     other.RoleID,
		})
	}
	return summaries, nil
}

// CountFor returns how many matches the given user has.
func (s *MatchStore) CountFor(ctx context.Context, username string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Match{}).
		Where("user_a = ? OR user_b = ?", username, username).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Wrap(err, "match not found")
	}
	return count, nil
}

// Pair returns the stored match row for the unordered pair, or NotFound.
func (s *MatchStore) Pair(ctx context.Context, usernameA, usernameB string) (*models.Match, error) {
	a, b := models.NormalizePair(usernameA, usernameB)
	var match models.Match
	err := s.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", a, b).
		First(&match).Error
	if err != nil {
		return nil, apperr.Wrap(err, "no match exists between these users")
	}
	return &match, nil
}
