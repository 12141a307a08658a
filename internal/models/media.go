package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeMovie  MediaType = "MOVIE"
	MediaTypeSeries MediaType = "SERIES"
)

type Media struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Type        MediaType                   `gorm:"type:varchar(20);not null;index" json:"type"`
	Category    datatypes.JSONSlice[string] `json:"category"`
	ReleaseYear int                         `gorm:"not null" json:"releaseYear"`
	EndYear     *int                        `json:"endYear"`
	Country     string                      `gorm:"type:varchar(100)" json:"country"`
	Language    string                      `gorm:"type:varchar(100)" json:"language"`
	Director    string                      `gorm:"type:varchar(255)" json:"director"`
	Platform    datatypes.JSONSlice[string] `json:"platform"`
	Rating      *float64                    `json:"rating"`
	Description string                      `gorm:"type:text" json:"description"`
	Image       string                      `gorm:"type:varchar(500)" json:"image"`
	CreatedByID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`

	Creator *User `gorm:"foreignKey:CreatedByID" json:"-"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Platform == nil {
		m.Platform = datatypes.JSONSlice[string]{}
	}
	return nil
}

// HasCategory reports whether tag is one of the media's categories (exact match).
func (m *Media) HasCategory(tag string) bool {
	return slices.Contains(m.Category, tag)
}

// UserMedia is a library entry: one user's relationship to one media item.
type UserMedia struct {
	UserID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"userId"`
	MediaID    uuid.UUID  `gorm:"type:uuid;primaryKey;index" json:"mediaId"`
	Favorite   bool       `gorm:"not null;default:false" json:"favorite"`
	Watched    bool       `gorm:"not null;default:false" json:"watched"`
	Rating     *float64   `json:"rating"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CalendarAt *time.Time `json:"calendarAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Media *Media `gorm:"foreignKey:MediaID" json:"-"`
}

func (UserMedia) TableName() string {
	return "user_media"
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	MediaID   uuid.UUID `gorm:"type:uuid;not null;index" json:"mediaId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Media *Media `gorm:"foreignKey:MediaID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
