package handler_test

import (
	"net/http"
	"testing"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LibraryHandlerIntegrationTestSuite struct {
	apiSuite
}

func (s *LibraryHandlerIntegrationTestSuite) TestAddWithoutBody() {
	ana := s.user("ana")
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Amelie", models.MediaTypeMovie)
	path := "/library/" + media.ID.String()

	w := s.do(http.MethodPost, path, s.token(ana), nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	entry := s.decode(w)
	s.Equal(false, entry["favorite"])
	s.Nil(entry["rating"])
	s.Equal("Amelie", entry["media"].(map[string]any)["title"])

	w = s.do(http.MethodPost, path, s.token(ana), nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LibraryHandlerIntegrationTestSuite) TestAddMissingMedia() {
	ana := s.user("ana")

	w := s.do(http.MethodPost, "/library/"+uuid.NewString(), s.token(ana), nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Media not found", s.decode(w)["err"])
}

func (s *LibraryHandlerIntegrationTestSuite) TestUpdateAndStats() {
	ana := s.user("ana")
	token := s.token(ana)
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Amelie", models.MediaTypeMovie)
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, media, nil)
	path := "/library/" + media.ID.String()

	errs := s.fieldErrors(s.do(http.MethodPut, path, token, map[string]any{"rating": 11}))
	s.Contains(errs, "rating")

	errs = s.fieldErrors(s.do(http.MethodPut, path, token, map[string]any{"calendarAt": "tomorrow"}))
	s.Contains(errs, "body")

	w := s.do(http.MethodPut, path, token, map[string]any{
		"rating":     8.5,
		"favorite":   true,
		"notes":      "again",
		"calendarAt": "2030-05-01T20:00:00Z",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.EqualValues(8.5, s.decode(w)["rating"])

	w = s.do(http.MethodGet, "/library/stats", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	stats := s.decode(w)
	s.EqualValues(1, stats["total"])
	s.EqualValues(1, stats["favorites"])
	s.EqualValues(1, stats["withNotes"])
	s.EqualValues(1, stats["scheduled"])
	s.EqualValues(8.5, stats["averageRating"])

	w = s.do(http.MethodGet, "/library/favorites", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(1, s.decode(w)["total"])

	w = s.do(http.MethodGet, "/library/watched", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(0, s.decode(w)["total"])
}

func (s *LibraryHandlerIntegrationTestSuite) TestRemove() {
	ana := s.user("ana")
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Amelie", models.MediaTypeMovie)
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, media, nil)
	path := "/library/" + media.ID.String()

	w := s.do(http.MethodDelete, path, s.token(ana), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, path, s.token(ana), nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Media not in library", s.decode(w)["err"])
}

func (s *LibraryHandlerIntegrationTestSuite) TestPublicLibraryHidesPrivateFields() {
	ana := s.user("ana")
	bob := s.user("bob")
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Amelie", models.MediaTypeMovie)

	w := s.do(http.MethodPost, "/library/"+media.ID.String(), s.token(ana), map[string]any{
		"notes":      "secret",
		"rating":     7,
		"calendarAt": "2030-05-01T20:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/library/user/ana", s.token(bob), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("ana", body["user"].(map[string]any)["nickName"])

	data := body["library"].(map[string]any)["data"].([]any)
	s.Require().Len(data, 1)
	entry := data[0].(map[string]any)
	s.EqualValues(7, entry["rating"])
	s.NotContains(entry, "notes")
	s.NotContains(entry, "calendarAt")

	w = s.do(http.MethodPut, "/users/me/privacy", s.token(ana), map[string]any{"privacy": "PRIVATE"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/library/user/ana", s.token(bob), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func TestLibraryHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LibraryHandlerIntegrationTestSuite))
}
