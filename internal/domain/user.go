package domain

import "time"

// User is provisioned by the identity-provider webhook; the ID is the
// provider's stable user identifier, not generated locally.
type User struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	IsSubscribed     bool       `gorm:"not null;default:false" json:"isSubscribed"`
	SubscriptionEnds *time.Time `json:"subscriptionEnds"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	Todos            []Todo     `gorm:"foreignKey:UserID" json:"todos,omitempty"`
}
