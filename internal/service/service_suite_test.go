package service_test

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/stretchr/testify/suite"
)

// serviceSuite wires every service over one in-memory database that is
// emptied before each test.
type serviceSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase

	userRepo    *repository.UserRepository
	mediaRepo   *repository.MediaRepository
	libraryRepo *repository.LibraryRepository
	commentRepo *repository.CommentRepository

	authService    *service.AuthService
	userService    *service.UserService
	mediaService   *service.MediaService
	libraryService *service.LibraryService
	commentService *service.CommentService
	rankingService *service.RankingService
}

func (s *serviceSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	db := s.testDB.DB

	s.userRepo = repository.NewUserRepository(db)
	s.mediaRepo = repository.NewMediaRepository(db)
	s.libraryRepo = repository.NewLibraryRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)

	s.authService = service.NewAuthService(s.userRepo, testutil.TestSecret, 0, "development")
	s.userService = service.NewUserService(s.userRepo, s.mediaRepo)
	s.mediaService = service.NewMediaService(s.mediaRepo)
	s.libraryService = service.NewLibraryService(s.libraryRepo, s.mediaRepo, s.userRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.mediaRepo, s.userRepo)
	s.rankingService = service.NewRankingService(s.mediaRepo)
}

func (s *serviceSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *serviceSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *serviceSuite) user(nickName string) *models.User {
	return testutil.CreateTestUser(s.T(), s.testDB.DB, nickName, models.RoleMember)
}

func (s *serviceSuite) admin(nickName string) *models.User {
	return testutil.CreateTestUser(s.T(), s.testDB.DB, nickName, models.RoleAdmin)
}

func (s *serviceSuite) movie(owner *models.User, title string, categories ...string) *models.Media {
	return testutil.CreateTestMedia(s.T(), s.testDB.DB, owner, title, models.MediaTypeMovie, categories...)
}

func (s *serviceSuite) series(owner *models.User, title string) *models.Media {
	return testutil.CreateTestMedia(s.T(), s.testDB.DB, owner, title, models.MediaTypeSeries)
}

// claims builds the identity the auth middleware would hand to a handler.
func claims(u *models.User) *utils.Claims {
	return &utils.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}
