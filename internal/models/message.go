package models

import "time"

// Message represents one chat message inside a match. UserA/UserB carry the
// match's normalized pair, so a conversation can be looked up without caring
// which side sent first. Sender is always one of the two.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	UserA     string `gorm:"size:64;not null;index:idx_message_pair,priority:1"`
	UserB     string `gorm:"size:64;not null;index:idx_message_pair,priority:2"`
	Sender    string `gorm:"size:64;not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`

	SenderAccount User `gorm:"foreignKey:Sender;references:Username"` // Belongs to User
}
