package handler

import (
	"time"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/google/uuid"
)

// userView is a user's own (or an admin's) view of an account.
type userView struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	NickName  string         `json:"nickName"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Role      models.Role    `json:"role"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	Privacy   models.Privacy `json:"privacy"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		NickName:  u.NickName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Privacy:   u.Privacy,
		CreatedAt: u.CreatedAt,
	}
}

// publicProfileView is what other members see of a PUBLIC profile.
type publicProfileView struct {
	ID        uuid.UUID      `json:"id"`
	NickName  string         `json:"nickName"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	Privacy   models.Privacy `json:"privacy"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toPublicProfileView(u *models.User) publicProfileView {
	return publicProfileView{
		ID:        u.ID,
		NickName:  u.NickName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Privacy:   u.Privacy,
		CreatedAt: u.CreatedAt,
	}
}

type privateProfileView struct {
	ID       uuid.UUID      `json:"id"`
	NickName string         `json:"nickName"`
	Privacy  models.Privacy `json:"privacy"`
}

type userRef struct {
	ID       uuid.UUID `json:"id"`
	NickName string    `json:"nickName"`
}

func toUserRef(u *models.User) *userRef {
	if u == nil {
		return nil
	}
	return &userRef{ID: u.ID, NickName: u.NickName}
}

type mediaView struct {
	models.Media
	CreatedBy *userRef `json:"createdBy,omitempty"`
}

func toMediaView(m *models.Media) mediaView {
	return mediaView{Media: *m, CreatedBy: toUserRef(m.Creator)}
}

type mediaRef struct {
	ID    uuid.UUID        `json:"id"`
	Title string           `json:"title"`
	Type  models.MediaType `json:"type"`
}

func toMediaRef(m *models.Media) *mediaRef {
	if m == nil {
		return nil
	}
	return &mediaRef{ID: m.ID, Title: m.Title, Type: m.Type}
}

type rankedMediaView struct {
	mediaView
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int64   `json:"ratingsCount"`
}

func toRankedViews(ranked []service.RankedMedia) []rankedMediaView {
	out := make([]rankedMediaView, len(ranked))
	for i := range ranked {
		out[i] = rankedMediaView{
			mediaView:     toMediaView(&ranked[i].Media),
			AverageRating: ranked[i].AverageRating,
			RatingsCount:  ranked[i].RatingsCount,
		}
	}
	return out
}

// libraryEntryView is the owner's view of a library entry.
type libraryEntryView struct {
	MediaID    uuid.UUID  `json:"mediaId"`
	Favorite   bool       `json:"favorite"`
	Watched    bool       `json:"watched"`
	Rating     *float64   `json:"rating"`
	Notes      string     `json:"notes"`
	CalendarAt *time.Time `json:"calendarAt"`
	AddedAt    time.Time  `json:"addedAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Media      *mediaView `json:"media,omitempty"`
}

func toLibraryEntryView(e *models.UserMedia) libraryEntryView {
	v := libraryEntryView{
		MediaID:    e.MediaID,
		Favorite:   e.Favorite,
		Watched:    e.Watched,
		Rating:     e.Rating,
		Notes:      e.Notes,
		CalendarAt: e.CalendarAt,
		AddedAt:    e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Media != nil {
		m := toMediaView(e.Media)
		v.Media = &m
	}
	return v
}

// publicLibraryEntryView hides notes and calendarAt from other users.
type publicLibraryEntryView struct {
	MediaID  uuid.UUID  `json:"mediaId"`
	Favorite bool       `json:"favorite"`
	Watched  bool       `json:"watched"`
	Rating   *float64   `json:"rating"`
	Media    *mediaView `json:"media,omitempty"`
}

func toPublicLibraryEntryView(e *models.UserMedia) publicLibraryEntryView {
	v := publicLibraryEntryView{
		MediaID:  e.MediaID,
		Favorite: e.Favorite,
		Watched:  e.Watched,
		Rating:   e.Rating,
	}
	if e.Media != nil {
		m := toMediaView(e.Media)
		v.Media = &m
	}
	return v
}

type commentView struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	MediaID   uuid.UUID `json:"mediaId"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      *userRef  `json:"user,omitempty"`
	Media     *mediaRef `json:"media,omitempty"`
}

func toCommentView(cm *models.Comment) commentView {
	return commentView{
		ID:        cm.ID,
		Content:   cm.Content,
		MediaID:   cm.MediaID,
		UserID:    cm.UserID,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
		User:      toUserRef(cm.User),
		Media:     toMediaRef(cm.Media),
	}
}
