package service

import (
	"errors"
	"strings"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokoService interface {
	CreateToko(actor *model.User, req *CreateTokoRequest) (*model.Toko, error)
	UpdateToko(actor *model.User, tokoID uuid.UUID, req *UpdateTokoRequest) (*model.Toko, error)
	DeleteToko(actor *model.User, tokoID uuid.UUID) error
	FindTokoByID(tokoID uuid.UUID) (*model.Toko, error)
	ListTokos(search string, page, perPage int) ([]model.TokoResponse, int64, error)

	AssignUser(userID, tokoID uuid.UUID) (*model.UserToko, error)
	RemoveUser(userID, tokoID uuid.UUID) error
	ListUsersByToko(tokoID uuid.UUID, page, perPage int) ([]model.UserResponse, int64, error)
	ListTokosByUser(userID uuid.UUID, page, perPage int) ([]model.TokoResponse, int64, error)
}

// CreateTokoRequest optionally bootstraps an admin and a kasir account for the
// new toko; both emails must be supplied together.
type CreateTokoRequest struct {
	Name       string  `json:"name" validate:"required"`
	Address    string  `json:"address" validate:"required"`
	JenisToko  string  `json:"jenis_toko" validate:"required"`
	AdminEmail *string `json:"admin_email" validate:"omitempty,email"`
	KasirEmail *string `json:"kasir_email" validate:"omitempty,email"`
}

type UpdateTokoRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	JenisToko *string `json:"jenis_toko"`
}

var ErrIncompleteBootstrap = errors.New("admin_email and kasir_email must be provided together")

type tokoService struct {
	tokoRepo repository.TokoRepository
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewTokoService(tokoRepo repository.TokoRepository, userRepo repository.UserRepository, db *gorm.DB) TokoService {
	return &tokoService{
		tokoRepo: tokoRepo,
		userRepo: userRepo,
		db:       db,
	}
}

// defaultPassword derives the deterministic initial password for bootstrapped
// accounts: the toko name lowercased with spaces stripped, plus "123".
func defaultPassword(tokoName string) string {
	return strings.ReplaceAll(strings.ToLower(tokoName), " ", "") + "123"
}

// CreateToko creates a toko, and when bootstrap emails are given also creates
// an admin and a kasir account assigned to it, all in one database
// transaction. A failure at any step leaves no rows behind.
func (s *tokoService) CreateToko(actor *model.User, req *CreateTokoRequest) (*model.Toko, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	jenis, err := model.ParseJenisToko(req.JenisToko)
	if err != nil {
		return nil, err
	}

	bootstrap := req.AdminEmail != nil || req.KasirEmail != nil
	if bootstrap && (req.AdminEmail == nil || req.KasirEmail == nil) {
		return nil, ErrIncompleteBootstrap
	}

	toko := &model.Toko{
		Name:      req.Name,
		Address:   req.Address,
		JenisToko: jenis,
	}
	toko.CreatedBy = actor.ID.String()
	toko.UpdatedBy = actor.ID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toko).Error; err != nil {
			return err
		}

		if !bootstrap {
			return nil
		}

		password := defaultPassword(req.Name)

		admin, err := createTokoUser(tx, *req.AdminEmail, "Admin "+req.Name, model.RoleAdmin, password, actor.ID.String())
		if err != nil {
			return err
		}
		kasir, err := createTokoUser(tx, *req.KasirEmail, "Kasir "+req.Name, model.RoleKasir, password, actor.ID.String())
		if err != nil {
			return err
		}

		for _, userID := range []uuid.UUID{admin.ID, kasir.ID} {
			assignment := &model.UserToko{UserID: userID, TokoID: toko.ID}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toko, nil
}

// createTokoUser creates one bootstrap account inside the toko transaction.
func createTokoUser(tx *gorm.DB, email, fullName string, role model.Role, password, createdBy string) (*model.User, error) {
	var existing model.User
	if err := tx.Where("email = ? AND is_deleted = ?", email, false).First(&existing).Error; err == nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Role:     role,
		Email:    email,
		FullName: fullName,
	}
	user.CreatedBy = createdBy
	user.UpdatedBy = createdBy
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *tokoService) UpdateToko(actor *model.User, tokoID uuid.UUID, req *UpdateTokoRequest) (*model.Toko, error) {
	toko, err := s.tokoRepo.FindByID(tokoID)
	if err != nil {
		return nil, ErrTokoNotFound
	}

	if req.Name != nil {
		toko.Name = *req.Name
	}
	if req.Address != nil {
		toko.Address = *req.Address
	}
	if req.JenisToko != nil {
		jenis, err := model.ParseJenisToko(*req.JenisToko)
		if err != nil {
			return nil, err
		}
		toko.JenisToko = jenis
	}
	toko.UpdatedBy = actor.ID.String()

	if err := s.tokoRepo.Update(toko); err != nil {
		return nil, err
	}
	return toko, nil
}

func (s *tokoService) DeleteToko(actor *model.User, tokoID uuid.UUID) error {
	if err := s.tokoRepo.SoftDelete(tokoID, actor.ID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokoNotFound
		}
		return err
	}
	return nil
}

func (s *tokoService) FindTokoByID(tokoID uuid.UUID) (*model.Toko, error) {
	toko, err := s.tokoRepo.FindByID(tokoID)
	if err != nil {
		return nil, ErrTokoNotFound
	}
	return toko, nil
}

func (s *tokoService) ListTokos(search string, page, perPage int) ([]model.TokoResponse, int64, error) {
	tokos, total, err := s.tokoRepo.List(search, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	return tokoResponses(tokos), total, nil
}

func (s *tokoService) AssignUser(userID, tokoID uuid.UUID) (*model.UserToko, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, ErrUserNotFound
	}
	if _, err := s.tokoRepo.FindByID(tokoID); err != nil {
		return nil, ErrTokoNotFound
	}
	if _, err := s.tokoRepo.FindAssignment(userID, tokoID); err == nil {
		return nil, ErrAlreadyAssigned
	}

	return s.tokoRepo.AssignUser(userID, tokoID)
}

func (s *tokoService) RemoveUser(userID, tokoID uuid.UUID) error {
	if err := s.tokoRepo.RemoveUser(userID, tokoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

func (s *tokoService) ListUsersByToko(tokoID uuid.UUID, page, perPage int) ([]model.UserResponse, int64, error) {
	if _, err := s.tokoRepo.FindByID(tokoID); err != nil {
		return nil, 0, ErrTokoNotFound
	}

	users, total, err := s.tokoRepo.ListUsersByToko(tokoID, page, perPage)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

func (s *tokoService) ListTokosByUser(userID uuid.UUID, page, perPage int) ([]model.TokoResponse, int64, error) {
	tokos, total, err := s.tokoRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	return tokoResponses(tokos), total, nil
}

func tokoResponses(tokos []model.Toko) []model.TokoResponse {
	responses := make([]model.TokoResponse, len(tokos))
	for i, toko := range tokos {
		responses[i] = toko.ToResponse()
	}
	return responses
}
