package models

import "time"

// Payment channel names. The set is closed: exactly one row per method is
// seeded at startup and the API only ever updates them.
const (
	MethodQRIS  = "qris"
	MethodGopay = "gopay"
	MethodOVO   = "ovo"
	MethodDana  = "dana"
)

// KnownMethods returns the fixed channel set in display order.
func KnownMethods() []string {
	return []string{MethodQRIS, MethodGopay, MethodOVO, MethodDana}
}

// PaymentMethod is one manual-transfer channel shown in the checkout modal.
type PaymentMethod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Method    string    `gorm:"size:16;not null;uniqueIndex" json:"method"`
	// AccountName is the holder name buyers must match on transfer.
	AccountName string `gorm:"size:255" json:"account_name"`
	// AccountNumber is the transfer destination. For qris it holds the
	// public URL of the QR image instead of a number.
	AccountNumber string `gorm:"size:512" json:"account_number"`
	IsActive      bool   `gorm:"default:false;not null" json:"is_active"`
}

// HasImageAccount reports whether AccountNumber is an image URL to render
// rather than text (the qris special case).
func (m PaymentMethod) HasImageAccount() bool {
	return m.Method == MethodQRIS
}
