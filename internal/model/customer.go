package model

import "time"

// Membership is the customer loyalty tier
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

// Valid reports whether the membership code is one of the known tiers
func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer extends a User with commerce attributes, 1:1 by user id
type Customer struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	UserID     uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Phone      string     `json:"phone" gorm:"type:varchar(50)"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Membership Membership `json:"membership" gorm:"type:varchar(1);not null;default:'B'"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Address is a customer delivery address
type Address struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	Street     string `json:"street" gorm:"type:varchar(50);not null"`
	City       string `json:"city" gorm:"type:varchar(50);not null"`
	CustomerID uint   `json:"customer_id" gorm:"index;not null"`
}
