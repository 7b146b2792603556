package models

import "time"

// PromoBanner is a homepage slider image. OrderIndex is a dense 1..N rank
// over all banners, active or not; the slider shows active ones in rank
// order. Every mutation keeps the ranking gap-free.
type PromoBanner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
	ImageURL   string    `gorm:"size:512;not null" json:"image_url"`
	LinkURL    *string   `gorm:"size:512" json:"link_url"`
	IsActive   bool      `gorm:"default:true;not null" json:"is_active"`
	OrderIndex int       `gorm:"not null;index" json:"order_index"`
}
