package repository

import (
	"time"

	"go-toko-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokoRepository interface {
	Create(toko *model.Toko) error
	FindByID(id uuid.UUID) (*model.Toko, error)
	Update(toko *model.Toko) error
	SoftDelete(id uuid.UUID, deletedBy string) error
	List(search string, page, perPage int) ([]model.Toko, int64, error)

	AssignUser(userID, tokoID uuid.UUID) (*model.UserToko, error)
	RemoveUser(userID, tokoID uuid.UUID) error
	FindAssignment(userID, tokoID uuid.UUID) (*model.UserToko, error)
	TokoIDsForUser(userID uuid.UUID) ([]uuid.UUID, error)
	UserHasAccess(userID, tokoID uuid.UUID) (bool, error)
	ListByUser(userID uuid.UUID, page, perPage int) ([]model.Toko, int64, error)
	ListUsersByToko(tokoID uuid.UUID, page, perPage int) ([]model.User, int64, error)
}

type tokoRepo struct {
	db *gorm.DB
}

func NewTokoRepo(db *gorm.DB) TokoRepository {
	return &tokoRepo{db}
}

func (r *tokoRepo) Create(toko *model.Toko) error {
	return r.db.Create(toko).Error
}

func (r *tokoRepo) FindByID(id uuid.UUID) (*model.Toko, error) {
	var toko model.Toko
	if err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&toko).Error; err != nil {
		return nil, err
	}
	return &toko, nil
}

func (r *tokoRepo) Update(toko *model.Toko) error {
	return r.db.Save(toko).Error
}

func (r *tokoRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	result := r.db.Model(&model.Toko{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tokoRepo) List(search string, page, perPage int) ([]model.Toko, int64, error) {
	query := r.db.Model(&model.Toko{}).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tokos []model.Toko
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tokos).Error
	return tokos, total, err
}

func (r *tokoRepo) AssignUser(userID, tokoID uuid.UUID) (*model.UserToko, error) {
	assignment := &model.UserToko{UserID: userID, TokoID: tokoID}
	if err := r.db.Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *tokoRepo) RemoveUser(userID, tokoID uuid.UUID) error {
	result := r.db.Where("user_id = ? AND toko_id = ?", userID, tokoID).Delete(&model.UserToko{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tokoRepo) FindAssignment(userID, tokoID uuid.UUID) (*model.UserToko, error) {
	var assignment model.UserToko
	if err := r.db.Where("user_id = ? AND toko_id = ?", userID, tokoID).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *tokoRepo) TokoIDsForUser(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.UserToko{}).
		Joins("JOIN mst_toko ON mst_toko.id = map_user_toko.toko_id AND mst_toko.is_deleted = ?", false).
		Where("map_user_toko.user_id = ?", userID).
		Pluck("map_user_toko.toko_id", &ids).Error
	return ids, err
}

func (r *tokoRepo) UserHasAccess(userID, tokoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserToko{}).
		Where("user_id = ? AND toko_id = ?", userID, tokoID).
		Count(&count).Error
	return count > 0, err
}

func (r *tokoRepo) ListByUser(userID uuid.UUID, page, perPage int) ([]model.Toko, int64, error) {
	query := r.db.Model(&model.Toko{}).
		Joins("JOIN map_user_toko ON map_user_toko.toko_id = mst_toko.id").
		Where("map_user_toko.user_id = ? AND mst_toko.is_deleted = ?", userID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tokos []model.Toko
	err := query.
		Order("mst_toko.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tokos).Error
	return tokos, total, err
}

func (r *tokoRepo) ListUsersByToko(tokoID uuid.UUID, page, perPage int) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).
		Joins("JOIN map_user_toko ON map_user_toko.user_id = mst_user.id").
		Where("map_user_toko.toko_id = ? AND mst_user.is_deleted = ?", tokoID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Order("mst_user.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	return users, total, err
}
