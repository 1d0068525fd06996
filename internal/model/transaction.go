package model

import "github.com/google/uuid"

// Transaction is a point-of-sale transaction header. Immutable once created
// except for soft deletion. TotalHarga always equals the sum of
// qty * price_at_moment over its details.
type Transaction struct {
	BaseModel
	KasirID    uuid.UUID `gorm:"type:uuid;not null;index" json:"kasir_id"`
	Kasir      *User     `gorm:"foreignKey:KasirID" json:"kasir,omitempty"`
	TokoID     uuid.UUID `gorm:"type:uuid;not null;index" json:"toko_id"`
	Toko       *Toko     `gorm:"foreignKey:TokoID" json:"toko,omitempty"`
	TotalHarga int64     `gorm:"not null" json:"total_harga"`

	Details []TransactionDetail `gorm:"foreignKey:TransaksiID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (Transaction) TableName() string {
	return "trn_transaksi_toko"
}

// TransactionDetail is one line of a transaction. PriceAtMoment is the
// product's unit price snapshotted at creation time; later price changes never
// alter historical totals.
type TransactionDetail struct {
	BaseModel
	TransaksiID   uuid.UUID `gorm:"type:uuid;not null;index" json:"transaksi_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Qty           int       `gorm:"not null" json:"qty"`
	PriceAtMoment int64     `gorm:"not null" json:"price_at_moment"`
}

func (TransactionDetail) TableName() string {
	return "trn_transaksi_detail_toko"
}
