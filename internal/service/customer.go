package service

import (
	"errors"

	"storefront-service/internal/model"

	"gorm.io/gorm"
)

// GetOrCreateCustomer resolves the customer record for a user id,
// creating an empty Bronze-tier profile on first contact
func GetOrCreateCustomer(db *gorm.DB, userID uint) (*model.Customer, error) {
	var customer model.Customer
	err := db.Where("user_id = ?", userID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = model.Customer{UserID: userID, Membership: model.MembershipBronze}
		if err := db.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
