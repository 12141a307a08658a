package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestSecret signs tokens in handler tests.
const TestSecret = "test-secret-key"

// DefaultPassword is the plain password of every fixture user.
const DefaultPassword = "Secret123"

// CreateTestUser inserts a user with a hashed DefaultPassword. The nickname
// doubles as the local part of the email.
func CreateTestUser(t *testing.T, db *gorm.DB, nickName string, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(DefaultPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        nickName + "@example.com",
		NickName:     nickName,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         role,
		Privacy:      models.PrivacyPublic,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", nickName, err)
	}
	return user
}

// CreateTestMedia inserts a media item created by creator.
func CreateTestMedia(t *testing.T, db *gorm.DB, creator *models.User, title string, mediaType models.MediaType, categories ...string) *models.Media {
	t.Helper()

	if len(categories) == 0 {
		categories = []string{"Drama"}
	}

	media := &models.Media{
		Title:       title,
		Type:        mediaType,
		Category:    datatypes.JSONSlice[string](categories),
		ReleaseYear: 2010,
		CreatedByID: creator.ID,
	}
	if err := db.Omit("Creator").Create(media).Error; err != nil {
		t.Fatalf("Failed to create media %s: %v", title, err)
	}
	return media
}

// CreateManyMedia inserts n movies titled "<prefix> 01".."<prefix> n",
// each created one millisecond after the previous one.
func CreateManyMedia(t *testing.T, db *gorm.DB, creator *models.User, prefix string, n int) []*models.Media {
	t.Helper()

	base := time.Now().Add(-time.Hour)
	out := make([]*models.Media, 0, n)
	for i := 1; i <= n; i++ {
		media := &models.Media{
			Title:       fmt.Sprintf("%s %02d", prefix, i),
			Type:        models.MediaTypeMovie,
			Category:    datatypes.JSONSlice[string]{"Drama"},
			ReleaseYear: 2000 + i,
			CreatedByID: creator.ID,
			CreatedAt:   base.Add(time.Duration(i) * time.Millisecond),
		}
		if err := db.Omit("Creator").Create(media).Error; err != nil {
			t.Fatalf("Failed to create media %d: %v", i, err)
		}
		out = append(out, media)
	}
	return out
}

// CreateTestEntry inserts a library entry; rating may be nil.
func CreateTestEntry(t *testing.T, db *gorm.DB, user *models.User, media *models.Media, rating *float64) *models.UserMedia {
	t.Helper()

	entry := &models.UserMedia{
		UserID:  user.ID,
		MediaID: media.ID,
		Rating:  rating,
	}
	if err := db.Omit("User", "Media").Create(entry).Error; err != nil {
		t.Fatalf("Failed to create library entry: %v", err)
	}
	return entry
}

// CreateTestComment inserts a comment by author on media.
func CreateTestComment(t *testing.T, db *gorm.DB, author *models.User, media *models.Media, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content: content,
		MediaID: media.ID,
		UserID:  author.ID,
	}
	if err := db.Omit("User", "Media").Create(comment).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	return comment
}

// TokenFor signs a TestSecret token for user.
func TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user, TestSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// Rating returns a pointer to v.
func Rating(v float64) *float64 {
	return &v
}

// CountRows counts rows of model matching query and args.
func CountRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
