package handler_test

import (
	"net/http"
	"testing"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type MediaHandlerIntegrationTestSuite struct {
	apiSuite
}

func movieBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"type":        "MOVIE",
		"category":    []string{"Sci-Fi"},
		"releaseYear": 1999,
		"director":    "Wachowski",
	}
}

func (s *MediaHandlerIntegrationTestSuite) TestCreateAndGet() {
	ana := s.user("ana")
	token := s.token(ana)

	w := s.do(http.MethodPost, "/media", token, movieBody("The Matrix"))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := s.decode(w)
	s.Equal("The Matrix", created["title"])
	s.Equal([]any{"Sci-Fi"}, created["category"])
	s.Equal([]any{}, created["platform"])
	s.Equal("ana", created["createdBy"].(map[string]any)["nickName"])

	w = s.do(http.MethodGet, "/media/"+created["id"].(string), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("The Matrix", s.decode(w)["title"])

	w = s.do(http.MethodPost, "/media", token, movieBody("The Matrix"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Media already exists", s.decode(w)["err"])
}

func (s *MediaHandlerIntegrationTestSuite) TestCreateValidation() {
	token := s.token(s.user("ana"))

	body := movieBody("Lost")
	body["type"] = "DOCUMENTARY"
	body["endYear"] = 1990
	body["category"] = []string{}

	errs := s.fieldErrors(s.do(http.MethodPost, "/media", token, body))
	s.Contains(errs, "type")
	s.Contains(errs, "endYear")
	s.Contains(errs, "category")

	body = movieBody("Twice")
	body["category"] = []string{"Sci-Fi", "Sci-Fi"}
	body["platform"] = []string{"Netflix", "Netflix"}

	errs = s.fieldErrors(s.do(http.MethodPost, "/media", token, body))
	s.Contains(errs, "category")
	s.Contains(errs, "platform")
}

func (s *MediaHandlerIntegrationTestSuite) TestMalformedIDIsNotFound() {
	token := s.token(s.user("ana"))

	w := s.do(http.MethodGet, "/media/not-a-uuid", token, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Media not found", s.decode(w)["err"])

	w = s.do(http.MethodGet, "/media/"+uuid.NewString(), token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *MediaHandlerIntegrationTestSuite) TestUpdatePermissions() {
	owner := s.user("owner")
	stranger := s.user("stranger")
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, owner, "Alien", models.MediaTypeMovie)
	path := "/media/" + media.ID.String()

	w := s.do(http.MethodPut, "/media/"+uuid.NewString(), s.token(stranger), map[string]any{"title": "x"})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, path, s.token(stranger), map[string]any{"title": "Aliens"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, path, s.token(owner), map[string]any{"title": "Aliens"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Aliens", s.decode(w)["title"])
}

func (s *MediaHandlerIntegrationTestSuite) TestDeleteCascades() {
	owner := s.user("owner")
	fan := s.user("fan")
	media := testutil.CreateTestMedia(s.T(), s.testDB.DB, owner, "Seven", models.MediaTypeMovie)
	testutil.CreateTestEntry(s.T(), s.testDB.DB, fan, media, testutil.Rating(9))
	testutil.CreateTestComment(s.T(), s.testDB.DB, fan, media, "wow")
	path := "/media/" + media.ID.String()

	w := s.do(http.MethodDelete, path, s.token(fan), nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, path, s.token(owner), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("Media deleted successfully", body["message"])
	s.Equal("Seven", body["deletedMedia"].(map[string]any)["title"])

	s.Zero(testutil.CountRows(s.T(), s.testDB.DB, &models.UserMedia{}, "media_id = ?", media.ID))
	s.Zero(testutil.CountRows(s.T(), s.testDB.DB, &models.Comment{}, "media_id = ?", media.ID))
}

func (s *MediaHandlerIntegrationTestSuite) TestListEnvelope() {
	ana := s.user("ana")
	testutil.CreateManyMedia(s.T(), s.testDB.DB, ana, "Film", 7)

	w := s.do(http.MethodGet, "/media?page=2&pageSize=3&sort=title&order=asc", s.token(ana), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	body := s.decode(w)
	s.EqualValues(2, body["page"])
	s.EqualValues(3, body["pageSize"])
	s.EqualValues(7, body["total"])
	s.EqualValues(3, body["totalPages"])
	s.EqualValues(3, body["count"])
	data := body["data"].([]any)
	s.Equal("Film 04", data[0].(map[string]any)["title"])

	errs := s.fieldErrors(s.do(http.MethodGet, "/media?sort=budget", s.token(ana), nil))
	s.Contains(errs, "sort")
}

func (s *MediaHandlerIntegrationTestSuite) TestSearchAndCategory() {
	ana := s.user("ana")
	token := s.token(ana)
	testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "The Matrix", models.MediaTypeMovie, "Sci-Fi")
	testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Heat", models.MediaTypeMovie, "Crime")

	w := s.do(http.MethodGet, "/media/search?title=matrix", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(1, s.decode(w)["total"])

	w = s.do(http.MethodGet, "/media/search?title=zzz", token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	errs := s.fieldErrors(s.do(http.MethodGet, "/media/search", token, nil))
	s.Contains(errs, "title")

	w = s.do(http.MethodGet, "/media/bycategory?category=Crime", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decode(w)["data"].([]any)
	s.Require().Len(data, 1)
	s.Equal("Heat", data[0].(map[string]any)["title"])
}

func (s *MediaHandlerIntegrationTestSuite) TestTopMovies() {
	ana := s.user("ana")
	heat := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Heat", models.MediaTypeMovie)
	up := testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Up", models.MediaTypeMovie)
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, heat, testutil.Rating(6))
	testutil.CreateTestEntry(s.T(), s.testDB.DB, ana, up, testutil.Rating(9))

	w := s.do(http.MethodGet, "/media/top/movies", s.token(ana), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("MOVIES", body["category"])
	s.EqualValues(2, body["count"])
	top := body["top10"].([]any)
	s.Equal("Up", top[0].(map[string]any)["title"])
	s.EqualValues(9, top[0].(map[string]any)["averageRating"])

	w = s.do(http.MethodGet, "/media/ranking", s.token(ana), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(2, s.decode(w)["total"])
}

func (s *MediaHandlerIntegrationTestSuite) TestHugePage() {
	ana := s.user("ana")
	testutil.CreateTestMedia(s.T(), s.testDB.DB, ana, "Alien", models.MediaTypeMovie, "Horror")

	for _, path := range []string{
		"/media?page=922337203685477582",
		"/media/bycategory?category=Horror&page=922337203685477582",
	} {
		w := s.do(http.MethodGet, path, s.token(ana), nil)
		s.Require().Equal(http.StatusOK, w.Code, path)
		body := s.decode(w)
		s.EqualValues(1, body["total"], path)
		s.EqualValues(0, body["count"], path)
		s.Empty(body["data"], path)
	}
}

func TestMediaHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MediaHandlerIntegrationTestSuite))
}
