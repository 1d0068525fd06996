package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"
	"go-toko-api/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionService interface {
	CreateTransaction(actor *model.User, req *CreateTransactionRequest) (*model.Transaction, error)
	GetTransactionByID(actor *model.User, id uuid.UUID) (*model.Transaction, error)
	ListTransactions(actor *model.User, req *TransactionListRequest) ([]model.Transaction, int64, error)
	GetTokoSummary(actor *model.User, req *TransactionListRequest) ([]repository.TokoSummaryRow, error)
}

type CreateTransactionRequest struct {
	TokoID uuid.UUID                `json:"toko_id" validate:"uuid_required"`
	Items  []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// TransactionListRequest is the shared filter for listing and summary.
// Dates use YYYY-MM-DD; when both are empty the service defaults the range to
// today so neither query ever scans the whole history.
type TransactionListRequest struct {
	StartDate string
	EndDate   string
	TokoID    *uuid.UUID
	Page      int
	PerPage   int
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	tokoRepo        repository.TokoRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewTransactionService(tRepo repository.TransactionRepository, tokoRepo repository.TokoRepository, db *gorm.DB, hub *ws.Hub) TransactionService {
	return &transactionService{
		transactionRepo: tRepo,
		tokoRepo:        tokoRepo,
		db:              db,
		wsHub:           hub,
	}
}

// CreateTransaction records a sale: every line's product is looked up, its
// current price snapshotted into the detail row, and the header total
// accumulated, all inside one database transaction. Authorization runs before
// any row is written.
func (s *transactionService) CreateTransaction(actor *model.User, req *CreateTransactionRequest) (*model.Transaction, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.tokoRepo.FindByID(req.TokoID); err != nil {
		return nil, ErrTokoNotFound
	}

	if actor.Role != model.RoleSuperadmin {
		hasAccess, err := s.tokoRepo.UserHasAccess(actor.ID, req.TokoID)
		if err != nil {
			return nil, err
		}
		if !hasAccess {
			return nil, ErrForbidden
		}
	}

	transaction := &model.Transaction{
		KasirID: actor.ID,
		TokoID:  req.TokoID,
	}
	transaction.CreatedBy = actor.ID.String()
	transaction.UpdatedBy = actor.ID.String()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalHarga int64
		details := make([]model.TransactionDetail, 0, len(req.Items))

		for _, item := range req.Items {
			var product model.Product
			if err := tx.Where("id = ? AND is_deleted = ?", item.ProductID, false).First(&product).Error; err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}

			totalHarga += product.Harga * int64(item.Qty)

			detail := model.TransactionDetail{
				ProductID:     product.ID,
				Qty:           item.Qty,
				PriceAtMoment: product.Harga, // snapshot, never a live reference
			}
			detail.CreatedBy = actor.ID.String()
			detail.UpdatedBy = actor.ID.String()
			details = append(details, detail)
		}

		transaction.TotalHarga = totalHarga
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].TransaksiID = transaction.ID
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.FindByID(transaction.ID)
	if err != nil {
		return nil, err
	}

	s.broadcastTransactionCreated(created, actor)

	return created, nil
}

func (s *transactionService) GetTransactionByID(actor *model.User, id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}

	if actor.Role != model.RoleSuperadmin {
		hasAccess, err := s.tokoRepo.UserHasAccess(actor.ID, transaction.TokoID)
		if err != nil {
			return nil, err
		}
		if !hasAccess {
			return nil, ErrForbidden
		}
	}

	return transaction, nil
}

func (s *transactionService) ListTransactions(actor *model.User, req *TransactionListRequest) ([]model.Transaction, int64, error) {
	filter, empty, err := s.buildFilter(actor, req)
	if err != nil {
		return nil, 0, err
	}
	if empty {
		return []model.Transaction{}, 0, nil
	}

	return s.transactionRepo.List(filter, req.Page, req.PerPage)
}

func (s *transactionService) GetTokoSummary(actor *model.User, req *TransactionListRequest) ([]repository.TokoSummaryRow, error) {
	filter, empty, err := s.buildFilter(actor, req)
	if err != nil {
		return nil, err
	}
	if empty {
		return []repository.TokoSummaryRow{}, nil
	}

	return s.transactionRepo.TokoSummary(filter)
}

// buildFilter resolves the date defaults and the actor's toko scope. The
// second return is true when the actor has no visible tokos at all.
func (s *transactionService) buildFilter(actor *model.User, req *TransactionListRequest) (repository.TransactionFilter, bool, error) {
	filter := repository.TransactionFilter{TokoID: req.TokoID}

	start, end, err := resolveDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return filter, false, err
	}
	filter.StartDate = start
	filter.EndDate = end

	if actor.Role != model.RoleSuperadmin {
		allowed, err := s.tokoRepo.TokoIDsForUser(actor.ID)
		if err != nil {
			return filter, false, err
		}

		if req.TokoID != nil {
			if !containsID(allowed, *req.TokoID) {
				return filter, false, ErrForbidden
			}
		} else {
			if len(allowed) == 0 {
				return filter, true, nil
			}
			filter.TokoIDs = allowed
		}
	}

	return filter, false, nil
}

// resolveDateRange parses the optional date bounds. When neither is given both
// default to today in the server's local date.
func resolveDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	if startStr == "" && endStr == "" {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &today, &today, nil
	}

	var start, end *time.Time
	if startStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		start = &parsed
	}
	if endStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		end = &parsed
	}
	return start, end, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (s *transactionService) broadcastTransactionCreated(transaction *model.Transaction, actor *model.User) {
	if s.wsHub == nil {
		return
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "transaction_created",
			"action": "transaction_created",
			"transaction": map[string]interface{}{
				"id":          transaction.ID,
				"toko_id":     transaction.TokoID,
				"total_harga": transaction.TotalHarga,
				"items":       len(transaction.Details),
			},
			"kasir": map[string]interface{}{
				"id":        actor.ID,
				"full_name": actor.FullName,
			},
			"message": fmt.Sprintf("%s recorded a transaction of %d", actor.FullName, transaction.TotalHarga),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
