package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JenisToko classifies a store: head office, branch, or retail outlet.
type JenisToko string

const (
	TokoPusat  JenisToko = "pusat"
	TokoCabang JenisToko = "cabang"
	TokoRetail JenisToko = "retail"
)

var ErrInvalidJenisToko = errors.New("invalid jenis_toko, must be one of: pusat, cabang, retail")

func ParseJenisToko(s string) (JenisToko, error) {
	switch JenisToko(s) {
	case TokoPusat, TokoCabang, TokoRetail:
		return JenisToko(s), nil
	}
	return "", ErrInvalidJenisToko
}

// Toko represents a store/outlet
type Toko struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address   string    `gorm:"type:text;not null" json:"address" validate:"required"`
	JenisToko JenisToko `gorm:"type:varchar(20);not null" json:"jenis_toko" validate:"required"`
}

func (Toko) TableName() string {
	return "mst_toko"
}

// TokoResponse for API responses
type TokoResponse struct {
	ID        uuid.UUID `json:"toko_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	JenisToko JenisToko `json:"jenis_toko"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Toko) ToResponse() TokoResponse {
	return TokoResponse{
		ID:        t.ID,
		Name:      t.Name,
		Address:   t.Address,
		JenisToko: t.JenisToko,
		CreatedAt: t.CreatedAt,
	}
}

// UserToko is the many-to-many relation record between users and tokos.
// It is a pure relation, not owned exclusively by either side.
type UserToko struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_toko,unique" json:"user_id"`
	TokoID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_toko,unique" json:"toko_id"`
}

func (UserToko) TableName() string {
	return "map_user_toko"
}

func (m *UserToko) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
