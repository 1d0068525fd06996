package service

import (
	"errors"
	"testing"
	"time"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestTransactionService(db *gorm.DB) TransactionService {
	return NewTransactionService(
		repository.NewTransactionRepo(db),
		repository.NewTokoRepo(db),
		db,
		nil,
	)
}

func TestCreateTransactionComputesTotalAndSnapshotsPrices(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Sumber Rejeki")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)

	indomie := createTestProduct(t, db, "Indomie Goreng", 10000)
	teh := createTestProduct(t, db, "Teh Botol", 5000)

	created, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items: []TransactionItemRequest{
			{ProductID: indomie.ID, Qty: 2},
			{ProductID: teh.ID, Qty: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), created.TotalHarga)
	require.Len(t, created.Details, 2)

	byProduct := map[uuid.UUID]model.TransactionDetail{}
	for _, d := range created.Details {
		byProduct[d.ProductID] = d
	}
	assert.Equal(t, int64(10000), byProduct[indomie.ID].PriceAtMoment)
	assert.Equal(t, 2, byProduct[indomie.ID].Qty)
	assert.Equal(t, int64(5000), byProduct[teh.ID].PriceAtMoment)

	// A later price change must not touch the recorded snapshot.
	require.NoError(t, db.Model(&model.Product{}).
		Where("id = ?", indomie.ID).
		Update("harga", int64(99000)).Error)

	reloaded, err := svc.GetTransactionByID(kasir, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), reloaded.TotalHarga)

	var snapshot int64
	for _, d := range reloaded.Details {
		if d.ProductID == indomie.ID {
			snapshot = d.PriceAtMoment
		}
	}
	assert.Equal(t, int64(10000), snapshot)
}

func TestCreateTransactionMissingProductRollsBack(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Maju")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)

	indomie := createTestProduct(t, db, "Indomie Goreng", 10000)

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items: []TransactionItemRequest{
			{ProductID: indomie.ID, Qty: 2},
			{ProductID: uuid.New(), Qty: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	// The whole workflow rolls back, including the valid line.
	var headers, details int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&headers).Error)
	require.NoError(t, db.Model(&model.TransactionDetail{}).Count(&details).Error)
	assert.Zero(t, headers)
	assert.Zero(t, details)
}

func TestCreateTransactionDeletedProductRejected(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Maju")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)

	gone := createTestProduct(t, db, "Discontinued", 7000)
	require.NoError(t, db.Model(&model.Product{}).
		Where("id = ?", gone.ID).
		Update("is_deleted", true).Error)

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: gone.ID, Qty: 1}},
	})
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestCreateTransactionUnassignedTokoForbidden(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Lain")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateTransactionSuperadminBypassesAssignment(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Pusat")
	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	created, err := svc.CreateTransaction(superadmin, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), created.TotalHarga)
}

func TestCreateTransactionTokoNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: uuid.New(),
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	assert.ErrorIs(t, err, ErrTokoNotFound)
}

func TestCreateTransactionRequiresItems(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: uuid.New(),
		Items:  []TransactionItemRequest{},
	})

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestListTransactionsDefaultsToToday(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko Maju")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	old, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)
	fresh, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 2}},
	})
	require.NoError(t, err)

	// Push one transaction into yesterday.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&model.Transaction{}).
		Where("id = ?", old.ID).
		Update("created_at", yesterday).Error)

	list, total, err := svc.ListTransactions(kasir, &TransactionListRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)

	// An explicit range starting yesterday picks both up again.
	list, total, err = svc.ListTransactions(kasir, &TransactionListRequest{
		StartDate: yesterday.Format("2006-01-02"),
		EndDate:   time.Now().Format("2006-01-02"),
		Page:      1,
		PerPage:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestListTransactionsScopedToAssignedTokos(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	tokoA := createTestToko(t, db, "Toko A")
	tokoB := createTestToko(t, db, "Toko B")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	assignTestUser(t, db, kasir.ID, tokoA.ID)
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	_, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: tokoA.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(superadmin, &CreateTransactionRequest{
		TokoID: tokoB.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)

	// The kasir only sees toko A.
	list, total, err := svc.ListTransactions(kasir, &TransactionListRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, tokoA.ID, list[0].TokoID)

	// Asking for toko B explicitly is refused outright.
	_, _, err = svc.ListTransactions(kasir, &TransactionListRequest{
		TokoID: &tokoB.ID, Page: 1, PerPage: 10,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Superadmin sees everything.
	_, total, err = svc.ListTransactions(superadmin, &TransactionListRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListTransactionsNoAssignedTokosReturnsEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")

	list, total, err := svc.ListTransactions(kasir, &TransactionListRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestListTransactionsInvalidDate(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")

	_, _, err := svc.ListTransactions(superadmin, &TransactionListRequest{
		StartDate: "01-02-2026", Page: 1, PerPage: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestGetTokoSummaryAggregatesPerToko(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	tokoA := createTestToko(t, db, "Toko A")
	tokoB := createTestToko(t, db, "Toko B")
	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateTransaction(superadmin, &CreateTransactionRequest{
			TokoID: tokoA.ID,
			Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateTransaction(superadmin, &CreateTransactionRequest{
		TokoID: tokoB.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 5}},
	})
	require.NoError(t, err)

	rows, err := svc.GetTokoSummary(superadmin, &TransactionListRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byToko := map[uuid.UUID]repository.TokoSummaryRow{}
	for _, row := range rows {
		byToko[row.TokoID] = row
	}
	assert.Equal(t, int64(2), byToko[tokoA.ID].TotalTransactions)
	assert.Equal(t, int64(20000), byToko[tokoA.ID].TotalRevenue)
	assert.Equal(t, "Toko A", byToko[tokoA.ID].TokoName)
	assert.Equal(t, int64(1), byToko[tokoB.ID].TotalTransactions)
	assert.Equal(t, int64(50000), byToko[tokoB.ID].TotalRevenue)
}

func TestGetTokoSummaryScopedForKasir(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	tokoA := createTestToko(t, db, "Toko A")
	tokoB := createTestToko(t, db, "Toko B")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	superadmin := createTestUser(t, db, model.RoleSuperadmin, "root@example.com")
	assignTestUser(t, db, kasir.ID, tokoA.ID)
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	_, err := svc.CreateTransaction(superadmin, &CreateTransactionRequest{
		TokoID: tokoA.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(superadmin, &CreateTransactionRequest{
		TokoID: tokoB.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)

	rows, err := svc.GetTokoSummary(kasir, &TransactionListRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tokoA.ID, rows[0].TokoID)

	_, err = svc.GetTokoSummary(kasir, &TransactionListRequest{TokoID: &tokoB.ID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetTransactionByIDAccessControl(t *testing.T) {
	db := openTestDB(t)
	svc := newTestTransactionService(db)

	toko := createTestToko(t, db, "Toko A")
	kasir := createTestUser(t, db, model.RoleKasir, "kasir@example.com")
	outsider := createTestUser(t, db, model.RoleKasir, "outsider@example.com")
	assignTestUser(t, db, kasir.ID, toko.ID)
	product := createTestProduct(t, db, "Indomie Goreng", 10000)

	created, err := svc.CreateTransaction(kasir, &CreateTransactionRequest{
		TokoID: toko.ID,
		Items:  []TransactionItemRequest{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetTransactionByID(outsider, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetTransactionByID(kasir, uuid.New())
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
