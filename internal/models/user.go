package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "PUBLIC"
	PrivacyPrivate Privacy = "PRIVATE"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	NickName     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"nickName"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"lastName"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role      `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Avatar       string    `gorm:"type:varchar(500)" json:"avatar"`
	Privacy      Privacy   `gorm:"type:varchar(20);not null;default:'PUBLIC'" json:"privacy"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Privacy == "" {
		u.Privacy = PrivacyPublic
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BootstrapClaim is a sentinel row. Whoever inserts the row with
// Key == FirstAdminClaim owns the ADMIN role of the first registration.
type BootstrapClaim struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

const FirstAdminClaim = "first_admin"
