package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a catalog item. Products are created and deleted by admins;
// there is no edit path, a wrong listing is removed and re-created.
type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	// Price in whole rupiah. Never negative.
	Price int64 `gorm:"not null" json:"price"`
	Stock int   `gorm:"not null" json:"stock"`
	// Images holds the public URLs of the uploaded photos, in upload order.
	// The first entry is the cover image.
	Images datatypes.JSONSlice[string] `json:"images"`
}

// InStock reports whether the product can be bought. Stock gates checkout,
// nothing else.
func (p Product) InStock() bool {
	return p.Stock > 0
}
