package service_test

import (
	"testing"
	"time"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LibraryServiceTestSuite struct {
	serviceSuite
}

func boolPtr(b bool) *bool { return &b }

func (s *LibraryServiceTestSuite) TestAddTwiceConflictsAndKeepsOneRow() {
	ana := s.user("ana")
	media := s.movie(ana, "Amelie")

	entry, err := s.libraryService.AddToLibrary(ana.ID, media.ID, &validation.LibraryEntryPatch{Favorite: boolPtr(true)})
	s.Require().NoError(err)
	s.True(entry.Favorite)
	s.Require().NotNil(entry.Media)
	s.Equal("Amelie", entry.Media.Title)

	_, err = s.libraryService.AddToLibrary(ana.ID, media.ID, nil)
	s.ErrorIs(err, service.ErrAlreadyInLibrary)

	s.Equal(int64(1), testutil.CountRows(s.T(), s.testDB.DB, &models.UserMedia{},
		"user_id = ? AND media_id = ?", ana.ID, media.ID))
}

func (s *LibraryServiceTestSuite) TestAddMissingMedia() {
	ana := s.user("ana")

	_, err := s.libraryService.AddToLibrary(ana.ID, uuid.New(), nil)
	s.ErrorIs(err, service.ErrMediaNotFound)
}

func (s *LibraryServiceTestSuite) TestUpdateEntry() {
	ana := s.user("ana")
	media := s.movie(ana, "Amelie")
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, media, nil)

	at := time.Date(2030, 1, 2, 20, 0, 0, 0, time.UTC)
	_, err := s.libraryService.UpdateEntry(ana.ID, media.ID, &validation.LibraryEntryPatch{
		Watched:    boolPtr(true),
		Rating:     testutil.Rating(9.5),
		Notes:      strPtr("rewatch with subtitles"),
		CalendarAt: &at,
	})
	s.Require().NoError(err)

	stored, err := s.libraryService.GetEntry(ana.ID, media.ID)
	s.Require().NoError(err)
	s.True(stored.Watched)
	s.False(stored.Favorite)
	s.Require().NotNil(stored.Rating)
	s.Equal(9.5, *stored.Rating)
	s.Equal("rewatch with subtitles", stored.Notes)
	s.Require().NotNil(stored.CalendarAt)
	s.True(at.Equal(*stored.CalendarAt))
}

func (s *LibraryServiceTestSuite) TestEntriesAreKeyedByCaller() {
	ana := s.user("ana")
	bob := s.user("bob")
	media := s.movie(ana, "Amelie")
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, media, testutil.Rating(8))

	// bob has no row for this media, so ana's row is out of reach
	_, err := s.libraryService.UpdateEntry(bob.ID, media.ID, &validation.LibraryEntryPatch{Rating: testutil.Rating(1)})
	s.ErrorIs(err, service.ErrLibraryEntryNotFound)

	err = s.libraryService.RemoveFromLibrary(bob.ID, media.ID)
	s.ErrorIs(err, service.ErrLibraryEntryNotFound)

	entry, err := s.libraryService.GetEntry(ana.ID, media.ID)
	s.Require().NoError(err)
	s.Equal(8.0, *entry.Rating)
}

func (s *LibraryServiceTestSuite) TestRemoveKeepsMedia() {
	ana := s.user("ana")
	media := s.movie(ana, "Amelie")
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, media, nil)

	s.Require().NoError(s.libraryService.RemoveFromLibrary(ana.ID, media.ID))

	_, err := s.libraryService.GetEntry(ana.ID, media.ID)
	s.ErrorIs(err, service.ErrLibraryEntryNotFound)

	_, err = s.mediaService.GetMedia(media.ID)
	s.NoError(err)
}

func (s *LibraryServiceTestSuite) TestStatsAverageRating() {
	ana := s.user("ana")
	db := s.testDB.DB
	for i, r := range []float64{8, 6, 10} {
		m := s.movie(ana, string(rune('A'+i)))
		testutil.CreateTestEntry(s.T(), db, ana, m, testutil.Rating(r))
	}
	testutil.CreateTestEntry(s.T(), db, ana, s.movie(ana, "Unrated"), nil)

	stats, err := s.libraryService.Stats(ana.ID)
	s.Require().NoError(err)
	s.Equal(4, stats.Total)
	s.Require().NotNil(stats.AverageRating)
	s.Equal(8.0, *stats.AverageRating)
}

func (s *LibraryServiceTestSuite) TestStatsWithoutRatingsIsNull() {
	ana := s.user("ana")
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, s.movie(ana, "Amelie"), nil)

	stats, err := s.libraryService.Stats(ana.ID)
	s.Require().NoError(err)
	s.Equal(1, stats.Total)
	s.Nil(stats.AverageRating)

	empty, err := s.libraryService.Stats(uuid.New())
	s.Require().NoError(err)
	s.Zero(empty.Total)
	s.Nil(empty.AverageRating)
}

func (s *LibraryServiceTestSuite) TestListFilters() {
	ana := s.user("ana")
	a := s.movie(ana, "A")
	b := s.movie(ana, "B")
	c := s.movie(ana, "C")

	_, err := s.libraryService.AddToLibrary(ana.ID, a.ID, &validation.LibraryEntryPatch{Favorite: boolPtr(true)})
	s.Require().NoError(err)
	_, err = s.libraryService.AddToLibrary(ana.ID, b.ID, &validation.LibraryEntryPatch{Watched: boolPtr(true)})
	s.Require().NoError(err)
	_, err = s.libraryService.AddToLibrary(ana.ID, c.ID, nil)
	s.Require().NoError(err)

	req := models.NewPageRequest(1, 10)

	all, err := s.libraryService.ListLibrary(ana.ID, repository.LibraryFilter{}, req)
	s.Require().NoError(err)
	s.Equal(int64(3), all.Total)

	favorites, err := s.libraryService.ListLibrary(ana.ID, repository.LibraryFilter{FavoritesOnly: true}, req)
	s.Require().NoError(err)
	s.Require().Len(favorites.Items, 1)
	s.Equal(a.ID, favorites.Items[0].MediaID)
	s.Require().NotNil(favorites.Items[0].Media)

	watched, err := s.libraryService.ListLibrary(ana.ID, repository.LibraryFilter{WatchedOnly: true}, req)
	s.Require().NoError(err)
	s.Require().Len(watched.Items, 1)
	s.Equal(b.ID, watched.Items[0].MediaID)
}

func (s *LibraryServiceTestSuite) TestPublicLibraryRespectsPrivacy() {
	ana := s.user("ana")
	bob := s.user("bob")
	admin := s.admin("boss")
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, s.movie(ana, "Amelie"), nil)

	req := models.NewPageRequest(1, 10)

	_, page, err := s.libraryService.PublicLibrary(claims(bob), "ana", req)
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)

	_, err = s.userService.UpdatePrivacy(ana.ID, models.PrivacyPrivate)
	s.Require().NoError(err)

	_, _, err = s.libraryService.PublicLibrary(claims(bob), "ana", req)
	s.ErrorIs(err, service.ErrPrivateLibrary)

	_, _, err = s.libraryService.PublicLibrary(claims(ana), "ana", req)
	s.NoError(err)

	_, _, err = s.libraryService.PublicLibrary(claims(admin), "ana", req)
	s.NoError(err)

	_, _, err = s.libraryService.PublicLibrary(claims(bob), "ghost", req)
	s.ErrorIs(err, service.ErrUserNotFound)
}

func TestLibraryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LibraryServiceTestSuite))
}

func TestComputeLibraryStats(t *testing.T) {
	at := time.Now()

	tests := []struct {
		name    string
		entries []models.UserMedia
		want    service.LibraryStats
		avg     *float64
	}{
		{
			name: "empty",
			want: service.LibraryStats{},
		},
		{
			name: "counts every flag",
			entries: []models.UserMedia{
				{Favorite: true, Watched: true, Notes: "  loved it ", CalendarAt: &at},
				{Favorite: true, Notes: "   "},
				{Watched: true},
			},
			want: service.LibraryStats{Total: 3, Favorites: 2, Watched: 2, WithNotes: 1, Scheduled: 1},
		},
		{
			name: "rounds to one decimal",
			entries: []models.UserMedia{
				{Rating: testutil.Rating(7)},
				{Rating: testutil.Rating(7.5)},
				{},
			},
			want: service.LibraryStats{Total: 3},
			avg:  testutil.Rating(7.3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ComputeLibraryStats(tt.entries)

			if tt.avg == nil {
				assert.Nil(t, got.AverageRating)
			} else if assert.NotNil(t, got.AverageRating) {
				assert.InDelta(t, *tt.avg, *got.AverageRating, 1e-9)
			}

			got.AverageRating = nil
			assert.Equal(t, tt.want, got)
		})
	}
}
