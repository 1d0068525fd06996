package repository

import (
	"go-toko-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserListFilter narrows the user listing. Zero values mean "no filter".
type UserListFilter struct {
	Role    *model.Role
	TokoID  *uuid.UUID
	Search  string
	Page    int
	PerPage int
}

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	List(filter UserListFilter) ([]model.User, int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) List(filter UserListFilter) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).Where("mst_user.is_deleted = ?", false)

	if filter.Role != nil {
		query = query.Where("mst_user.role = ?", *filter.Role)
	}

	if filter.TokoID != nil {
		query = query.
			Joins("JOIN map_user_toko ON map_user_toko.user_id = mst_user.id").
			Where("map_user_toko.toko_id = ?", *filter.TokoID).
			Distinct()
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("mst_user.full_name LIKE ? OR mst_user.email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Order("mst_user.created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&users).Error
	return users, total, err
}
