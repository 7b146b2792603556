package models

import "time"

// Upload is a bookkeeping row for every file written to an image bucket.
// Rows outlive references: if a product insert fails after its images were
// stored, or a banner is deleted, the file stays on disk until the janitor
// reconciles it against the URLs the live rows still point at.
type Upload struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	Bucket      string    `gorm:"size:64;not null;index" json:"bucket"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	StorePath   string    `gorm:"column:store_path;size:512" json:"store_path"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	UploadedBy  uint      `gorm:"index" json:"uploaded_by"`
}
