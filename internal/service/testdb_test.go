package service

import (
	"testing"

	"go-toko-api/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database. A single connection
// keeps every gorm session on the same sqlite instance.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Toko{},
		&model.UserToko{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionDetail{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role model.Role, email string) *model.User {
	t.Helper()

	user := &model.User{
		Role:     role,
		Email:    email,
		FullName: "Test " + string(role),
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestToko(t *testing.T, db *gorm.DB, name string) *model.Toko {
	t.Helper()

	toko := &model.Toko{
		Name:      name,
		Address:   "Jl. Test No. 1",
		JenisToko: model.TokoCabang,
	}
	require.NoError(t, db.Create(toko).Error)
	return toko
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, harga int64) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:  name,
		Merk:  "TestMerk",
		Harga: harga,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func assignTestUser(t *testing.T, db *gorm.DB, userID, tokoID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&model.UserToko{UserID: userID, TokoID: tokoID}).Error)
}
