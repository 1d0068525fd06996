package model

type Product struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Merk string `gorm:"type:varchar(255);not null" json:"merk" validate:"required"`
	// Unit price in the smallest currency unit (e.g. rupiah), never fractional.
	Harga int64 `gorm:"not null" json:"harga" validate:"required,gt=0"`
}

func (Product) TableName() string {
	return "mst_produk"
}
