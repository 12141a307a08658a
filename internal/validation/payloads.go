package validation

import (
	"strings"
	"time"

	"github.com/Baaaki/screenshelf/internal/models"
	"gorm.io/datatypes"
)

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName" validate:"required,min=2,max=100"`
	NickName  string `json:"nickName" validate:"required,min=2,max=50,nospace,notreserved"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
}

func (in *RegisterInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.NickName = strings.TrimSpace(in.NickName)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
}

type MediaInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Type        string   `json:"type" validate:"required,oneof=MOVIE SERIES"`
	Category    []string `json:"category" validate:"required,min=1,unique,dive,required"`
	ReleaseYear int      `json:"releaseYear" validate:"required,min=1900,notfuture"`
	EndYear     *int     `json:"endYear" validate:"omitempty,min=1900,notfuture,gtefield=ReleaseYear"`
	Country     string   `json:"country" validate:"max=100"`
	Language    string   `json:"language" validate:"max=100"`
	Director    string   `json:"director" validate:"max=255"`
	Platform    []string `json:"platform" validate:"omitempty,unique,dive,required"`
	Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
	Description string   `json:"description"`
	Image       string   `json:"image" validate:"omitempty,url"`
}

func (in *MediaInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = trimAll(in.Category)
	in.Platform = trimAll(in.Platform)
}

// ToMedia builds a new Media owned by creator.
func (in *MediaInput) ToMedia() *models.Media {
	platform := datatypes.JSONSlice[string]{}
	if in.Platform != nil {
		platform = datatypes.JSONSlice[string](in.Platform)
	}
	return &models.Media{
		Title:       in.Title,
		Type:        models.MediaType(in.Type),
		Category:    datatypes.JSONSlice[string](in.Category),
		ReleaseYear: in.ReleaseYear,
		EndYear:     in.EndYear,
		Country:     in.Country,
		Language:    in.Language,
		Director:    in.Director,
		Platform:    platform,
		Rating:      in.Rating,
		Description: in.Description,
		Image:       in.Image,
	}
}

// MediaPatch is a partial Media update; nil fields are left unchanged.
type MediaPatch struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Type        *string   `json:"type" validate:"omitempty,oneof=MOVIE SERIES"`
	Category    *[]string `json:"category" validate:"omitempty,min=1,unique,dive,required"`
	ReleaseYear *int      `json:"releaseYear" validate:"omitempty,min=1900,notfuture"`
	EndYear     *int      `json:"endYear" validate:"omitempty,min=1900,notfuture"`
	Country     *string   `json:"country" validate:"omitempty,max=100"`
	Language    *string   `json:"language" validate:"omitempty,max=100"`
	Director    *string   `json:"director" validate:"omitempty,max=255"`
	Platform    *[]string `json:"platform" validate:"omitempty,unique,dive,required"`
	Rating      *float64  `json:"rating" validate:"omitempty,min=0,max=10"`
	Description *string   `json:"description"`
	Image       *string   `json:"image" validate:"omitempty,url"`
}

func (p *MediaPatch) normalize() {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Category != nil {
		c := trimAll(*p.Category)
		p.Category = &c
	}
	if p.Platform != nil {
		pl := trimAll(*p.Platform)
		p.Platform = &pl
	}
}

// Apply merges the set fields into m.
func (p *MediaPatch) Apply(m *models.Media) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Type != nil {
		m.Type = models.MediaType(*p.Type)
	}
	if p.Category != nil {
		m.Category = datatypes.JSONSlice[string](*p.Category)
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.EndYear != nil {
		endYear := *p.EndYear
		m.EndYear = &endYear
	}
	if p.Country != nil {
		m.Country = *p.Country
	}
	if p.Language != nil {
		m.Language = *p.Language
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.Platform != nil {
		m.Platform = datatypes.JSONSlice[string](*p.Platform)
	}
	if p.Rating != nil {
		rating := *p.Rating
		m.Rating = &rating
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
}

// CheckMedia enforces rules spanning several fields of a merged Media.
func CheckMedia(m *models.Media) error {
	if m.EndYear != nil && *m.EndYear < m.ReleaseYear {
		return FieldError("endYear", "must be greater than or equal to releaseYear")
	}
	return nil
}

// LibraryEntryPatch sets the personal state of a library entry. It is used
// both when adding media to a library and when updating the entry.
type LibraryEntryPatch struct {
	Favorite   *bool      `json:"favorite"`
	Watched    *bool      `json:"watched"`
	Rating     *float64   `json:"rating" validate:"omitempty,min=0,max=10"`
	Notes      *string    `json:"notes" validate:"omitempty,max=5000"`
	CalendarAt *time.Time `json:"calendarAt"`
}

func (p *LibraryEntryPatch) Apply(e *models.UserMedia) {
	if p.Favorite != nil {
		e.Favorite = *p.Favorite
	}
	if p.Watched != nil {
		e.Watched = *p.Watched
	}
	if p.Rating != nil {
		rating := *p.Rating
		e.Rating = &rating
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.CalendarAt != nil {
		at := *p.CalendarAt
		e.CalendarAt = &at
	}
}

type CommentInput struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func (in *CommentInput) normalize() {
	in.Content = strings.TrimSpace(in.Content)
}

type ProfilePatch struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
}

func (p *ProfilePatch) normalize() {
	if p.FirstName != nil {
		v := strings.TrimSpace(*p.FirstName)
		p.FirstName = &v
	}
	if p.LastName != nil {
		v := strings.TrimSpace(*p.LastName)
		p.LastName = &v
	}
}

func (p *ProfilePatch) Apply(u *models.User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}

type PrivacyInput struct {
	Privacy string `json:"privacy" validate:"required,oneof=PUBLIC PRIVATE"`
}

type AvatarInput struct {
	Avatar string `json:"avatar" validate:"required,url,max=500"`
}

// MediaListQuery is the sort selection of GET /media.
type MediaListQuery struct {
	Sort  string `form:"sort" json:"sort" validate:"oneof=title releaseYear rating createdAt"`
	Order string `form:"order" json:"order" validate:"oneof=asc desc"`
}

func (q *MediaListQuery) normalize() {
	if q.Sort == "" {
		q.Sort = "createdAt"
	}
	if q.Order != "asc" {
		q.Order = "desc"
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
