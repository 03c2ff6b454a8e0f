package model

// Tag is a reusable label
type Tag struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Label string `json:"label" gorm:"type:varchar(255);uniqueIndex;not null"`
}

// TaggedItem attaches a tag to an arbitrary entity by (kind, id)
type TaggedItem struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	TagID      uint       `json:"tag_id" gorm:"uniqueIndex:idx_tag_entity;not null"`
	EntityType EntityType `json:"entity_type" gorm:"type:varchar(20);uniqueIndex:idx_tag_entity;not null"`
	EntityID   uint       `json:"entity_id" gorm:"uniqueIndex:idx_tag_entity;not null"`
	Tag        *Tag       `json:"tag,omitempty"`
}
