package model

import "gorm.io/gorm"

// EntityType names a kind of record that tags and likes may attach to.
// The set is closed: attaching to an unknown kind is a validation error.
type EntityType string

const (
	EntityProduct    EntityType = "product"
	EntityCollection EntityType = "collection"
	EntityPromotion  EntityType = "promotion"
	EntityReview     EntityType = "review"
	EntityCustomer   EntityType = "customer"
	EntityOrder      EntityType = "order"
)

// entityProbes maps each attachable kind to an empty instance used for
// existence lookups. An explicit table instead of reflection keeps the
// set of attachable kinds auditable in one place.
var entityProbes = map[EntityType]func() interface{}{
	EntityProduct:    func() interface{} { return &Product{} },
	EntityCollection: func() interface{} { return &Collection{} },
	EntityPromotion:  func() interface{} { return &Promotion{} },
	EntityReview:     func() interface{} { return &Review{} },
	EntityCustomer:   func() interface{} { return &Customer{} },
	EntityOrder:      func() interface{} { return &Order{} },
}

// KnownEntityType reports whether the kind may carry tags or likes
func KnownEntityType(kind EntityType) bool {
	_, ok := entityProbes[kind]
	return ok
}

// EntityExists checks that a record of the given kind and id exists
func EntityExists(db *gorm.DB, kind EntityType, id uint) (bool, error) {
	probe, ok := entityProbes[kind]
	if !ok {
		return false, nil
	}
	var count int64
	if err := db.Model(probe()).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
