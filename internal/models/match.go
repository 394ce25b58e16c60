package models

import "time"

// Match represents a mutual pairing between two distinct accounts. The pair
// is stored normalized (UserA sorts before UserB) so the composite unique
// index makes duplicate pairs impossible regardless of which side initiated.
// The stored order carries no meaning beyond that.
type Match struct {
	ID        uint   `gorm:"primaryKey"`
	UserA     string `gorm:"size:64;not null;uniqueIndex:idx_match_pair,priority:1"`
	UserB     string `gorm:"size:64;not null;uniqueIndex:idx_match_pair,priority:2"`
	CreatedAt time.Time

	// Foreign keys into users; matches may never reference an unknown
	// username.
	UserAAccount User `gorm:"foreignKey:UserA;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserBAccount User `gorm:"foreignKey:UserB;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NormalizePair returns the two usernames in stored order.
func NormalizePair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
