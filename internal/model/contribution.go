package model

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Contribution is a piece of work submitted by a member for HR review.
// Approved mirrors Status: it is true exactly when Status is "approved".
type Contribution struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      int64   `gorm:"not null;index" json:"user_id"`
	Username    string  `gorm:"not null" json:"username"`
	Description string  `gorm:"not null" json:"description"`
	Links       *string `json:"links"`
	Timestamp   string  `gorm:"not null;index" json:"timestamp"`
	Approved    bool    `gorm:"not null;default:false" json:"approved"`
	Status      string  `gorm:"not null;default:'pending'" json:"status"`
	ReviewedBy  *int64  `json:"reviewed_by"`
	ReviewedAt  *string `json:"reviewed_at"`
}
