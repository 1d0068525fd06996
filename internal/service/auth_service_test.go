package service

import (
	"errors"
	"testing"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) AuthService {
	return NewAuthService(repository.NewUserRepo(db))
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	user := createTestUser(t, db, model.RoleKasir, "kasir@example.com")

	resp, err := svc.Login("kasir@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, model.RoleKasir, resp.User.Role)

	_, err = svc.Login("kasir@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRoles(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	admin := createTestUser(t, db, model.RoleAdmin, "admin@example.com")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")

	// Superadmin picks any role.
	created, err := svc.Register(superadmin, &RegisterRequest{
		Email:    "new.admin@example.com",
		Password: "secret123",
		FullName: "New Admin",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, created.Role)

	// Admin registrations are forced to kasir regardless of the request.
	created, err = svc.Register(admin, &RegisterRequest{
		Email:    "new.kasir@example.com",
		Password: "secret123",
		FullName: "New Kasir",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleKasir, created.Role)

	// Kasir cannot register anyone.
	_, err = svc.Register(kasir, &RegisterRequest{
		Email:    "another@example.com",
		Password: "secret123",
		FullName: "Another",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Superadmin with a bogus role is rejected.
	_, err = svc.Register(superadmin, &RegisterRequest{
		Email:    "bogus@example.com",
		Password: "secret123",
		FullName: "Bogus",
		Role:     "owner",
	})
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")

	_, err := svc.Register(superadmin, &RegisterRequest{
		Email:    "dup@example.com",
		Password: "secret123",
		FullName: "First",
		Role:     "kasir",
	})
	require.NoError(t, err)

	_, err = svc.Register(superadmin, &RegisterRequest{
		Email:    "dup@example.com",
		Password: "secret123",
		FullName: "Second",
		Role:     "kasir",
	})
	assert.ErrorIs(t, err, ErrEmailExists)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")

	_, err := svc.Register(superadmin, &RegisterRequest{
		Email:    "not-an-email",
		Password: "123",
		FullName: "",
		Role:     "kasir",
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Fields)
}

func TestUpdateUserSelfProfile(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")

	updated, err := svc.UpdateUser(kasir, kasir.ID, &UpdateUserRequest{
		FullName: strPtr("Kasir Baru"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kasir Baru", updated.FullName)
	assert.Equal(t, model.RoleKasir, updated.Role)

	// Password change works through the same path.
	_, err = svc.UpdateUser(kasir, kasir.ID, &UpdateUserRequest{
		Password: strPtr("newsecret"),
	})
	require.NoError(t, err)

	_, err = svc.Login("kasir@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateUserRoleRules(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	admin := createTestUser(t, db, model.RoleAdmin, "admin@example.com")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	target := createTestUser(t, db, model.RoleKasir, "target@example.com")

	// Kasir cannot set a role, not even their own.
	_, err := svc.UpdateUser(kasir, kasir.ID, &UpdateUserRequest{Role: strPtr("admin")})
	assert.ErrorIs(t, err, ErrForbidden)

	// Kasir cannot edit another account at all.
	_, err = svc.UpdateUser(kasir, target.ID, &UpdateUserRequest{FullName: strPtr("X")})
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin may only grant kasir.
	_, err = svc.UpdateUser(admin, target.ID, &UpdateUserRequest{Role: strPtr("admin")})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateUser(admin, target.ID, &UpdateUserRequest{Role: strPtr("kasir")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleKasir, updated.Role)

	// Superadmin may grant anything.
	updated, err = svc.UpdateUser(superadmin, target.ID, &UpdateUserRequest{Role: strPtr("admin")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	createTestUser(t, db, model.RoleKasir, "taken@example.com")
	target := createTestUser(t, db, model.RoleKasir, "target@example.com")

	_, err := svc.UpdateUser(superadmin, target.ID, &UpdateUserRequest{
		Email: strPtr("taken@example.com"),
	})
	assert.ErrorIs(t, err, ErrEmailExists)

	// Re-submitting the current email is not a conflict.
	_, err = svc.UpdateUser(superadmin, target.ID, &UpdateUserRequest{
		Email: strPtr("target@example.com"),
	})
	assert.NoError(t, err)
}

func TestListUsersFilters(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	toko := createTestToko(t, db, "Toko A")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	createTestUser(t, db, model.RoleAdmin, "admin@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)

	users, total, err := svc.ListUsers(&ListUsersRequest{Role: "kasir", Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, kasir.ID, users[0].ID)

	users, total, err = svc.ListUsers(&ListUsersRequest{TokoID: &toko.ID, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, kasir.ID, users[0].ID)

	_, _, err = svc.ListUsers(&ListUsersRequest{Role: "owner", Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}
