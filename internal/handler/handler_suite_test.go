package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/Baaaki/screenshelf/internal/handler"
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// apiSuite serves the full /api/v1 router over an in-memory database.
type apiSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *apiSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.testDB = testutil.SetupTestDatabase(s.T())
	db := s.testDB.DB

	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, testutil.TestSecret, time.Hour, "development")
	userService := service.NewUserService(userRepo, mediaRepo)
	mediaService := service.NewMediaService(mediaRepo)
	libraryService := service.NewLibraryService(libraryRepo, mediaRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, mediaRepo, userRepo)
	rankingService := service.NewRankingService(mediaRepo)

	s.router = gin.New()
	handler.RegisterRoutes(s.router.Group("/api/v1"), &handler.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Media:   handler.NewMediaHandler(mediaService, rankingService),
		Library: handler.NewLibraryHandler(libraryService),
		Comment: handler.NewCommentHandler(commentService),
	}, testutil.TestSecret)
}

func (s *apiSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *apiSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *apiSuite) user(nickName string) *models.User {
	return testutil.CreateTestUser(s.T(), s.testDB.DB, nickName, models.RoleMember)
}

func (s *apiSuite) admin(nickName string) *models.User {
	return testutil.CreateTestUser(s.T(), s.testDB.DB, nickName, models.RoleAdmin)
}

func (s *apiSuite) token(u *models.User) string {
	return testutil.TokenFor(s.T(), u)
}

// do sends a request to /api/v1 + path. body is JSON-encoded unless nil;
// token is sent as a bearer token unless empty.
func (s *apiSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into a generic map.
func (s *apiSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// fieldErrors returns the {errors:{field:[...]}} map of a 400 response.
func (s *apiSuite) fieldErrors(w *httptest.ResponseRecorder) map[string]any {
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	errs, ok := s.decode(w)["errors"].(map[string]any)
	s.Require().True(ok, w.Body.String())
	return errs
}
