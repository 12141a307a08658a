package main

import (
	"testing"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/testutil"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*repository.UserRepository, *service.AuthService) {
	testDB := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { testDB.Teardown(t) })

	userRepo := repository.NewUserRepository(testDB.DB)
	return userRepo, service.NewAuthService(userRepo, testutil.TestSecret, 0, "development")
}

func adminInput(email string) *validation.RegisterInput {
	return &validation.RegisterInput{
		Email:     email,
		NickName:  "root",
		Password:  "Secret123",
		FirstName: "Admin",
		LastName:  "Admin",
	}
}

func TestSeedAdminRegistersMissingAccount(t *testing.T) {
	userRepo, authService := setup(t)

	user, err := seedAdmin(userRepo, authService, adminInput("root@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Second run is a no-op
	again, err := seedAdmin(userRepo, authService, adminInput("root@example.com"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestSeedAdminPromotesExistingMember(t *testing.T) {
	userRepo, authService := setup(t)

	_, _, err := authService.Register(&validation.RegisterInput{
		Email: "first@example.com", NickName: "first", Password: "Secret123", FirstName: "First", LastName: "User",
	})
	require.NoError(t, err)
	member, _, err := authService.Register(&validation.RegisterInput{
		Email: "member@example.com", NickName: "member", Password: "Secret123", FirstName: "Some", LastName: "Member",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)

	user, err := seedAdmin(userRepo, authService, adminInput("member@example.com"))
	require.NoError(t, err)
	assert.Equal(t, member.ID, user.ID)

	stored, err := userRepo.GetUserByID(member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestSeedAdminRejectsInvalidInput(t *testing.T) {
	userRepo, authService := setup(t)

	input := adminInput("root@example.com")
	input.Password = "123"

	_, err := seedAdmin(userRepo, authService, input)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}
