package model

import "time"

// LikedItem records a user liking an arbitrary entity by (kind, id)
type LikedItem struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	UserID     uint       `json:"user_id" gorm:"uniqueIndex:idx_user_entity;not null"`
	EntityType EntityType `json:"entity_type" gorm:"type:varchar(20);uniqueIndex:idx_user_entity;not null"`
	EntityID   uint       `json:"entity_id" gorm:"uniqueIndex:idx_user_entity;not null"`
	CreatedAt  time.Time  `json:"created_at"`
}
