package models

import "gorm.io/gorm"

// Payment is the intent created when a user starts checkout for a paid
// course. ExternalReference is handed to the payment provider and comes
// back on the webhook; ProviderPaymentID is recorded from the webhook.
type Payment struct {
	gorm.Model
	UserID            uint    `gorm:"index;not null" json:"user_id"`
	CourseID          uint    `gorm:"index;not null" json:"course_id"`
	Amount            float64 `gorm:"not null" json:"amount"`
	Currency          string  `gorm:"default:USD" json:"currency"`
	Status            string  `gorm:"default:pending" json:"status"` // pending, approved, failed
	ExternalReference string  `gorm:"uniqueIndex;not null" json:"external_reference"`
	ProviderPaymentID string  `json:"provider_payment_id,omitempty"`
}
