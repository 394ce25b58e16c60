package models

import "time"

// User represents a registered account. The username is the primary
// identity and is immutable after signup, as is the role.
type User struct {
	Username     string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	Birthday     time.Time
	Occupation   string `gorm:"size:255;not null;default:'unemployed'"`
	Bio          string
	RoleID       RoleID `gorm:"not null;index"`

	// Profile image reference returned by the media host: a public URL
	// plus the object key needed to delete it later. Both nullable.
	ProfileURL *string `gorm:"size:512"`
	ProfileKey *string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinimumAge is the youngest a user may be at signup.
const MinimumAge = 18

// Age returns the whole years between birthday and now, accounting for
// whether the birthday has already passed this year.
func Age(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	anniversary := birthday.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
