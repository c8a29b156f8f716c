package models

import (
	"time"
)

// User statuses, mutated only through the admin API
const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// User represents one Messenger conversation participant and the details
// collected from them
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PSID          string    `gorm:"column:psid;type:varchar(64);not null;uniqueIndex" json:"psid"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	Phone         string    `gorm:"type:varchar(50)" json:"phone"`
	Address       string    `gorm:"type:text" json:"address"`
	AttachmentURL string    `gorm:"type:text" json:"attachment_url"`
	Status        string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ConversationSession persists a sender's conversation phase when the
// db-backed session store is selected
type ConversationSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PSID      string    `gorm:"column:psid;type:varchar(64);not null;uniqueIndex" json:"psid"`
	Phase     string    `gorm:"type:varchar(50);not null" json:"phase"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConversationSession) TableName() string {
	return "conversation_sessions"
}
