package repository

import (
	"time"

	"go-toko-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter is the shared predicate for listing and summary queries.
// Dates are inclusive calendar days resolved by the service layer; TokoIDs is
// the role-scoped allow list applied when no explicit TokoID is given.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	TokoID    *uuid.UUID
	KasirID   *uuid.UUID
	TokoIDs   []uuid.UUID
}

// TokoSummaryRow is the per-toko aggregate over non-deleted transactions.
type TokoSummaryRow struct {
	TokoID            uuid.UUID `json:"toko_id"`
	TokoName          string    `json:"toko_name"`
	TotalTransactions int64     `json:"total_transactions"`
	TotalRevenue      int64     `json:"total_revenue"`
}

type TransactionRepository interface {
	FindByID(id uuid.UUID) (*model.Transaction, error)
	List(filter TransactionFilter, page, perPage int) ([]model.Transaction, int64, error)
	TokoSummary(filter TransactionFilter) ([]TokoSummaryRow, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Kasir").
		Preload("Toko").
		Preload("Details.Product").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	query = query.Where("trn_transaksi_toko.is_deleted = ?", false)

	if filter.StartDate != nil {
		query = query.Where("trn_transaksi_toko.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		// EndDate is an inclusive calendar day
		query = query.Where("trn_transaksi_toko.created_at < ?", filter.EndDate.AddDate(0, 0, 1))
	}
	if filter.TokoID != nil {
		query = query.Where("trn_transaksi_toko.toko_id = ?", *filter.TokoID)
	}
	if filter.KasirID != nil {
		query = query.Where("trn_transaksi_toko.kasir_id = ?", *filter.KasirID)
	}
	if filter.TokoIDs != nil {
		query = query.Where("trn_transaksi_toko.toko_id IN ?", filter.TokoIDs)
	}

	return query
}

func (r *transactionRepo) List(filter TransactionFilter, page, perPage int) ([]model.Transaction, int64, error) {
	query := applyFilter(r.db.Model(&model.Transaction{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []model.Transaction
	err := query.
		Preload("Kasir").
		Preload("Toko").
		Preload("Details.Product").
		Order("trn_transaksi_toko.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) TokoSummary(filter TransactionFilter) ([]TokoSummaryRow, error) {
	var rows []TokoSummaryRow
	err := applyFilter(r.db.Model(&model.Transaction{}), filter).
		Select(`trn_transaksi_toko.toko_id,
			mst_toko.name AS toko_name,
			COUNT(*) AS total_transactions,
			COALESCE(SUM(trn_transaksi_toko.total_harga), 0) AS total_revenue`).
		Joins("JOIN mst_toko ON mst_toko.id = trn_transaksi_toko.toko_id").
		Group("trn_transaksi_toko.toko_id, mst_toko.name").
		Order("total_revenue DESC").
		Scan(&rows).Error
	return rows, err
}
